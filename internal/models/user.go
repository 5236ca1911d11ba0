package models

import (
	"github.com/golang-jwt/jwt/v4"
)

// User is the canonical user document stored in MongoDB. Group and challenge
// memberships are denormalized onto the user so every request can resolve the
// current user's view with a single read.
type User struct {
	ID                 string                `json:"id" bson:"_id"`
	Username           string                `json:"username" bson:"username"`
	FirstName          string                `json:"first_name" bson:"first_name"`
	LastName           string                `json:"last_name" bson:"last_name"`
	Email              string                `json:"email,omitempty" bson:"email,omitempty"`
	NotificationToken  string                `json:"-" bson:"notification_token,omitempty"`
	UserGroups         []UserGroup           `json:"user_groups" bson:"user_groups"`
	ChallengeStatuses  []UserChallengeStatus `json:"challenge_statuses" bson:"challenge_statuses"`
	PersonalChallenges []Challenge           `json:"personal_challenges" bson:"personal_challenges"`
	CreatedAt          int64                 `json:"created_at" bson:"created_at"`
	ModifiedAt         int64                 `json:"modified_at" bson:"modified_at"`
}

// UserGroup is one group-membership entry. Scores are not embedded here;
// totals are folded from the score ledger.
type UserGroup struct {
	GroupID   string `json:"group_id" bson:"group_id"`
	GroupName string `json:"group_name,omitempty" bson:"group_name,omitempty"`
	JoinedAt  int64  `json:"joined_at" bson:"joined_at"`
}

// UserChallengeStatus is the per-user status of a shared group challenge.
type UserChallengeStatus struct {
	ChallengeID string `json:"challenge_id" bson:"challenge_id"`
	GroupID     string `json:"group_id" bson:"group_id"`
	IsOngoing   bool   `json:"is_ongoing" bson:"is_ongoing"`
	IsAccepted  bool   `json:"is_accepted" bson:"is_accepted"`
	IsFinished  bool   `json:"is_finished" bson:"is_finished"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
