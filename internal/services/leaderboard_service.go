package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/zikrhub/backend/internal/models"
	"github.com/zikrhub/backend/internal/repositories"
)

// LeaderboardService ranks a user against each accepted friend by their
// scores within the shared friendship group.
type LeaderboardService interface {
	GetFriendsLeaderboard(ctx context.Context, userID string) ([]models.FriendScore, error)
}

type leaderboardService struct {
	users       repositories.UserRepository
	friendships repositories.FriendshipRepository
	ledger      repositories.ScoreLedgerRepository
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(
	users repositories.UserRepository,
	friendships repositories.FriendshipRepository,
	ledger repositories.ScoreLedgerRepository,
) LeaderboardService {
	return &leaderboardService{
		users:       users,
		friendships: friendships,
		ledger:      ledger,
	}
}

// GetFriendsLeaderboard returns one row per accepted friend with both sides'
// totals in their shared group, ordered by the caller's score descending.
// Ties break on ascending friend user id so the ordering is deterministic.
// Pending requests have no group and are excluded.
func (s *leaderboardService) GetFriendsLeaderboard(ctx context.Context, userID string) ([]models.FriendScore, error) {
	records, err := s.friendships.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friendship records: %w", err)
	}

	accepted := make([]models.FriendshipRecord, 0, len(records))
	friendIDs := make([]string, 0, len(records))
	for _, record := range records {
		if record.State != models.FriendshipAccepted {
			continue
		}
		accepted = append(accepted, record)
		friendIDs = append(friendIDs, record.Other(userID))
	}

	friendUsers, err := s.users.FindAllByIDs(ctx, friendIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}
	byID := make(map[string]models.User, len(friendUsers))
	for _, u := range friendUsers {
		byID[u.ID] = u
	}

	rows := make([]models.FriendScore, 0, len(accepted))
	for _, record := range accepted {
		friendID := record.Other(userID)

		ownScore, err := s.ledger.GetScore(ctx, record.GroupID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to read score for group %s: %w", record.GroupID, err)
		}
		friendScore, err := s.ledger.GetScore(ctx, record.GroupID, friendID)
		if err != nil {
			return nil, fmt.Errorf("failed to read score for group %s: %w", record.GroupID, err)
		}

		u := byID[friendID]
		rows = append(rows, models.FriendScore{
			Friend: models.Friend{
				UserID:    friendID,
				Username:  u.Username,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				GroupID:   record.GroupID,
			},
			UserScore:   ownScore,
			FriendScore: friendScore,
			GroupID:     record.GroupID,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].UserScore != rows[j].UserScore {
			return rows[i].UserScore > rows[j].UserScore
		}
		return rows[i].Friend.UserID < rows[j].Friend.UserID
	})
	return rows, nil
}
