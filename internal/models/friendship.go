package models

// Friendship states for a user pair.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// FriendshipRecord is the single source of truth for one user pair, keyed by
// the unordered pair (LoUserID < HiUserID). A pending record remembers who
// asked; an accepted record carries the id of the two-member group backing
// the friendship.
type FriendshipRecord struct {
	ID          string `json:"id" bson:"_id"`
	LoUserID    string `json:"lo_user_id" bson:"lo_user_id"`
	HiUserID    string `json:"hi_user_id" bson:"hi_user_id"`
	State       string `json:"state" bson:"state"`
	RequesterID string `json:"requester_id" bson:"requester_id"`
	GroupID     string `json:"group_id,omitempty" bson:"group_id,omitempty"`
	CreatedAt   int64  `json:"created_at" bson:"created_at"`
	ModifiedAt  int64  `json:"modified_at" bson:"modified_at"`
}

// PairKey builds the canonical id for a user pair, independent of order.
func PairKey(a, b string) (lo, hi, key string) {
	lo, hi = a, b
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo, hi, lo + ":" + hi
}

// Other returns the pair member that is not userID.
func (f *FriendshipRecord) Other(userID string) string {
	if f.LoUserID == userID {
		return f.HiUserID
	}
	return f.LoUserID
}

// Involves reports whether userID is one side of the pair.
func (f *FriendshipRecord) Involves(userID string) bool {
	return f.LoUserID == userID || f.HiUserID == userID
}

// Friend is one user's view of a friendship, as returned by the friends
// listing. Pending entries only appear on the invitee's side and have no
// group yet.
type Friend struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsPending bool   `json:"is_pending"`
	GroupID   string `json:"group_id,omitempty"`
}

// SendFriendRequestPayload defines the request body for sending a friend request
type SendFriendRequestPayload struct {
	UserID string `json:"user_id" validate:"required"`
}
