package models

import "time"

// ScoreEntry is one append-only row of the score ledger (PostgreSQL). A
// user's total for a group is the sum of deltas; the unique index on
// (group_id, user_id, challenge_id) makes a replayed completion a no-op.
type ScoreEntry struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	GroupID     string    `json:"group_id" gorm:"size:64;index;uniqueIndex:idx_score_cause"`
	UserID      string    `json:"user_id" gorm:"size:64;index;uniqueIndex:idx_score_cause"`
	ChallengeID string    `json:"challenge_id" gorm:"size:64;uniqueIndex:idx_score_cause"`
	Delta       int       `json:"delta"`
	CreatedAt   time.Time `json:"created_at"`
}

// FriendScore is one row of the friends leaderboard: the caller's and the
// friend's totals within their shared friendship group. Rows are ordered by
// the caller's score descending; ties break on ascending friend user id.
type FriendScore struct {
	Friend      Friend `json:"friend"`
	UserScore   int    `json:"current_user_score"`
	FriendScore int    `json:"friend_score"`
	GroupID     string `json:"group_id"`
}
