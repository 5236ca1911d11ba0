package models

// Group is a challenge-hosting group stored in MongoDB. Friendship-backed
// groups always have exactly two members; user-created groups may have any
// number.
type Group struct {
	ID            string   `json:"id" bson:"_id"`
	Name          string   `json:"name" bson:"name"`
	AdminID       string   `json:"admin_id" bson:"admin_id"`
	UserIDs       []string `json:"user_ids" bson:"user_ids"`
	ChallengeIDs  []string `json:"challenge_ids" bson:"challenge_ids"`
	IsBinaryGroup bool     `json:"is_binary_group" bson:"is_binary_group"`
	CreatedAt     int64    `json:"created_at" bson:"created_at"`
	ModifiedAt    int64    `json:"modified_at" bson:"modified_at"`
}

// Contains reports whether userID is a member of the group.
func (g *Group) Contains(userID string) bool {
	for _, id := range g.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
