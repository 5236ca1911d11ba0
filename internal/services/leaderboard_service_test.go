package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zikrhub/backend/internal/models"
)

func TestFriendsLeaderboard_OrdersByOwnScoreDescending(t *testing.T) {
	env := newTestEnv(t, "")
	env.addUser(t, "amr")
	env.addUser(t, "basma")
	env.addUser(t, "celine")
	ctx := context.Background()

	groupAB := env.befriend(t, "amr", "basma")
	groupAC := env.befriend(t, "amr", "celine")

	// amr: two completions with basma, one with celine.
	first := env.createChallenge(t, "amr", groupAB, twoSubChallenges())
	second := env.createChallenge(t, "amr", groupAB, twoSubChallenges())
	third := env.createChallenge(t, "amr", groupAC, twoSubChallenges())

	env.complete(t, "amr", first)
	env.complete(t, "amr", second)
	env.complete(t, "basma", first)
	env.complete(t, "amr", third)
	env.complete(t, "celine", third)

	rows, err := env.leaderboardSvc.GetFriendsLeaderboard(ctx, "amr")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "basma", rows[0].Friend.UserID)
	assert.Equal(t, 2, rows[0].UserScore)
	assert.Equal(t, 1, rows[0].FriendScore)
	assert.Equal(t, groupAB, rows[0].GroupID)

	assert.Equal(t, "celine", rows[1].Friend.UserID)
	assert.Equal(t, 1, rows[1].UserScore)
	assert.Equal(t, 1, rows[1].FriendScore)
	assert.Equal(t, groupAC, rows[1].GroupID)
}

func TestFriendsLeaderboard_TieBreaksOnFriendID(t *testing.T) {
	env := newTestEnv(t, "")
	env.addUser(t, "amr")
	env.addUser(t, "dana")
	env.addUser(t, "basma")
	ctx := context.Background()

	groupAD := env.befriend(t, "amr", "dana")
	groupAB := env.befriend(t, "amr", "basma")

	// Equal own scores in both groups.
	for _, groupID := range []string{groupAD, groupAB} {
		require.NoError(t, env.ledger.Append(ctx, &models.ScoreEntry{
			GroupID:     groupID,
			UserID:      "amr",
			ChallengeID: "ch-" + groupID,
			Delta:       1,
		}))
	}

	rows, err := env.leaderboardSvc.GetFriendsLeaderboard(ctx, "amr")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "basma", rows[0].Friend.UserID)
	assert.Equal(t, "dana", rows[1].Friend.UserID)
}

func TestFriendsLeaderboard_ExcludesPendingRequests(t *testing.T) {
	env := newTestEnv(t, "")
	env.addUser(t, "amr")
	env.addUser(t, "basma")
	env.addUser(t, "dana")
	env.addUser(t, "emad")
	ctx := context.Background()

	env.befriend(t, "amr", "basma")
	require.NoError(t, env.friendshipSvc.SendRequest(ctx, "amr", "dana"))
	require.NoError(t, env.friendshipSvc.SendRequest(ctx, "emad", "amr"))

	rows, err := env.leaderboardSvc.GetFriendsLeaderboard(ctx, "amr")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "basma", rows[0].Friend.UserID)

	// An accepted friend with no completions still appears, at zero.
	assert.Zero(t, rows[0].UserScore)
	assert.Zero(t, rows[0].FriendScore)
}
