package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zikrhub/backend/internal/models"
	"github.com/zikrhub/backend/internal/repositories"
)

// FriendshipService drives the pending -> accepted/none state machine for
// user pairs and keeps the backing friendship groups consistent.
type FriendshipService interface {
	SendRequest(ctx context.Context, requesterID, targetID string) error
	ResolveRequest(ctx context.Context, responderID, requesterID string, accept bool) error
	DeleteFriendship(ctx context.Context, userID, friendID string) error
	GetFriends(ctx context.Context, userID string) ([]models.Friend, error)
}

type friendshipService struct {
	users       repositories.UserRepository
	friendships repositories.FriendshipRepository
	binder      *FriendshipGroupBinder
	notifier    NotificationSink
}

// NewFriendshipService creates a new FriendshipService
func NewFriendshipService(
	users repositories.UserRepository,
	friendships repositories.FriendshipRepository,
	binder *FriendshipGroupBinder,
	notifier NotificationSink,
) FriendshipService {
	return &friendshipService{
		users:       users,
		friendships: friendships,
		binder:      binder,
		notifier:    notifier,
	}
}

// SendRequest records a pending friend request from requester to target. A
// reciprocal pending request from the target is treated as the target's
// acceptance rather than a conflict.
func (s *friendshipService) SendRequest(ctx context.Context, requesterID, targetID string) error {
	if requesterID == targetID {
		return ErrSelfRequest
	}

	target, err := s.users.GetUserByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", targetID, err)
	}
	if target == nil {
		return ErrUserNotFound
	}

	record, err := s.friendships.GetByPair(ctx, requesterID, targetID)
	if err != nil {
		return fmt.Errorf("failed to load friendship record: %w", err)
	}

	if record != nil {
		if record.State == models.FriendshipPending && record.RequesterID == targetID {
			// The other side already asked; requesting back accepts.
			return s.accept(ctx, record, requesterID)
		}
		return ErrAlreadyRequested
	}

	lo, hi, key := models.PairKey(requesterID, targetID)
	record = &models.FriendshipRecord{
		ID:          key,
		LoUserID:    lo,
		HiUserID:    hi,
		State:       models.FriendshipPending,
		RequesterID: requesterID,
		CreatedAt:   time.Now().Unix(),
	}
	if err := s.friendships.PutRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to save friendship record: %w", err)
	}

	requester, err := s.users.GetUserByID(ctx, requesterID)
	if err == nil && requester != nil {
		s.notifier.Notify(ctx, target, "New friend request",
			fmt.Sprintf("%s %s sent you a friend request", requester.FirstName, requester.LastName))
	}
	return nil
}

// ResolveRequest accepts or rejects the pending request that requester sent
// to responder.
func (s *friendshipService) ResolveRequest(ctx context.Context, responderID, requesterID string, accept bool) error {
	record, err := s.friendships.GetByPair(ctx, responderID, requesterID)
	if err != nil {
		return fmt.Errorf("failed to load friendship record: %w", err)
	}
	if record == nil {
		return ErrNoFriendRequest
	}
	if record.State == models.FriendshipAccepted {
		return ErrAlreadyAccepted
	}
	if record.RequesterID != requesterID {
		// The responder is the one who asked; nothing to resolve on their side.
		return ErrNoFriendRequest
	}

	if !accept {
		if err := s.friendships.DeleteRecord(ctx, record.ID); err != nil {
			return fmt.Errorf("failed to delete friendship record: %w", err)
		}
		return nil
	}
	return s.accept(ctx, record, responderID)
}

// accept flips a pending record to accepted, creating the backing group. The
// record write happens last so a partial failure leaves the pair pending
// rather than half-accepted.
func (s *friendshipService) accept(ctx context.Context, record *models.FriendshipRecord, responderID string) error {
	groupID, err := s.binder.CreateFriendshipGroup(ctx, responderID, record.Other(responderID))
	if err != nil {
		return err
	}

	record.State = models.FriendshipAccepted
	record.GroupID = groupID
	if err := s.friendships.PutRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to save friendship record: %w", err)
	}

	requester, err := s.users.GetUserByID(ctx, record.Other(responderID))
	if err == nil && requester != nil {
		responder, rerr := s.users.GetUserByID(ctx, responderID)
		if rerr == nil && responder != nil {
			s.notifier.Notify(ctx, requester, "Friend request accepted",
				fmt.Sprintf("%s %s accepted your friend request", responder.FirstName, responder.LastName))
		}
	}
	return nil
}

// DeleteFriendship removes an accepted friendship and tears down its backing
// group. Pending requests cannot be deleted through this path.
func (s *friendshipService) DeleteFriendship(ctx context.Context, userID, friendID string) error {
	friend, err := s.users.GetUserByID(ctx, friendID)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", friendID, err)
	}
	if friend == nil {
		return ErrUserNotFound
	}

	record, err := s.friendships.GetByPair(ctx, userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to load friendship record: %w", err)
	}
	if record == nil {
		return ErrNoFriendship
	}
	if record.State == models.FriendshipPending {
		return ErrFriendshipPending
	}

	if err := s.binder.TeardownFriendshipGroup(ctx, record.GroupID, record.LoUserID, record.HiUserID); err != nil {
		return err
	}
	if err := s.friendships.DeleteRecord(ctx, record.ID); err != nil {
		return fmt.Errorf("failed to delete friendship record: %w", err)
	}
	return nil
}

// GetFriends projects the user's pair records into their friends view.
// Pending requests the user sent are invisible until resolved.
func (s *friendshipService) GetFriends(ctx context.Context, userID string) ([]models.Friend, error) {
	records, err := s.friendships.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friendship records: %w", err)
	}

	visible := make([]models.FriendshipRecord, 0, len(records))
	friendIDs := make([]string, 0, len(records))
	for _, record := range records {
		if record.State == models.FriendshipPending && record.RequesterID == userID {
			continue
		}
		visible = append(visible, record)
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

	friends := make([]models.Friend, 0, len(visible))
	for _, record := range visible {
		friendID := record.Other(userID)
		u := byID[friendID]
		friends = append(friends, models.Friend{
			UserID:    friendID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			IsPending: record.State == models.FriendshipPending,
			GroupID:   record.GroupID,
		})
	}
	return friends, nil
}
