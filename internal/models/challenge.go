package models

// NoGroupID is the group id sentinel carried by personal challenges.
const NoGroupID = ""

// Challenge is the canonical challenge document stored in MongoDB. The
// sub-challenge list is the immutable definition of the challenge; per-user
// progress over it lives in ChallengeProgress (or, under the shared progress
// policy, directly on this document).
type Challenge struct {
	ID             string         `json:"id" bson:"_id"`
	GroupID        string         `json:"group_id" bson:"group_id"`
	Name           string         `json:"name" bson:"name"`
	Motivation     string         `json:"motivation" bson:"motivation"`
	ExpiryDate     int64          `json:"expiry_date" bson:"expiry_date"`
	CreatingUserID string         `json:"creating_user_id" bson:"creating_user_id"`
	IsOngoing      bool           `json:"is_ongoing" bson:"is_ongoing"`
	UsersAccepted  []string       `json:"users_accepted" bson:"users_accepted"`
	UsersFinished  []string       `json:"users_finished" bson:"users_finished"`
	SubChallenges  []SubChallenge `json:"sub_challenges" bson:"sub_challenges"`
	CreatedAt      int64          `json:"created_at" bson:"created_at"`
	ModifiedAt     int64          `json:"modified_at" bson:"modified_at"`
}

// IsPersonal reports whether the challenge lives outside any group.
func (c *Challenge) IsPersonal() bool {
	return c.GroupID == NoGroupID
}

// SubChallenge is one weighted item within a challenge. LeftRepetitions only
// ever decreases and never goes below zero.
type SubChallenge struct {
	ZekrID              int    `json:"zekr_id" bson:"zekr_id"`
	Zekr                string `json:"zekr,omitempty" bson:"zekr,omitempty"`
	OriginalRepetitions int    `json:"original_repetitions" bson:"original_repetitions"`
	LeftRepetitions     int    `json:"left_repetitions" bson:"left_repetitions"`
}

// ChallengeProgress is one user's repetition trajectory over a challenge
// definition, keyed by (challenge, user). Only used under the independent
// progress policy.
type ChallengeProgress struct {
	ID            string         `json:"id" bson:"_id"`
	ChallengeID   string         `json:"challenge_id" bson:"challenge_id"`
	UserID        string         `json:"user_id" bson:"user_id"`
	SubChallenges []SubChallenge `json:"sub_challenges" bson:"sub_challenges"`
	ModifiedAt    int64          `json:"modified_at" bson:"modified_at"`
}

// ProgressKey builds the canonical id of a ChallengeProgress document.
func ProgressKey(challengeID, userID string) string {
	return challengeID + ":" + userID
}

// AddChallengeRequest defines the request body for creating a group challenge
type AddChallengeRequest struct {
	GroupID       string                   `json:"group_id" validate:"required"`
	Name          string                   `json:"name" validate:"required,min=1,max=100"`
	Motivation    string                   `json:"motivation,omitempty" validate:"omitempty,max=500"`
	ExpiryDate    int64                    `json:"expiry_date" validate:"required"`
	SubChallenges []SubChallengeDefinition `json:"sub_challenges" validate:"required,min=1,dive"`
}

// AddPersonalChallengeRequest defines the request body for creating a
// personal challenge
type AddPersonalChallengeRequest struct {
	Name          string                   `json:"name" validate:"required,min=1,max=100"`
	Motivation    string                   `json:"motivation,omitempty" validate:"omitempty,max=500"`
	ExpiryDate    int64                    `json:"expiry_date" validate:"required"`
	SubChallenges []SubChallengeDefinition `json:"sub_challenges" validate:"required,min=1,dive"`
}

// SubChallengeDefinition is the creation-time shape of a sub-challenge.
type SubChallengeDefinition struct {
	ZekrID      int `json:"zekr_id" validate:"required"`
	Repetitions int `json:"repetitions" validate:"required,min=1"`
}

// UpdateChallengeRequest defines the request body for submitting new
// left-repetition values
type UpdateChallengeRequest struct {
	SubChallenges []SubChallengeUpdate `json:"sub_challenges" validate:"required,min=1,dive"`
}

// SubChallengeUpdate is one submitted repetition counter.
type SubChallengeUpdate struct {
	ZekrID          int `json:"zekr_id" validate:"required"`
	LeftRepetitions int `json:"left_repetitions"`
}
