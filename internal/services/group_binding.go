package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zikrhub/backend/internal/models"
	"github.com/zikrhub/backend/internal/repositories"
)

// FriendshipGroupBinder creates and destroys the implicit two-member group
// that backs an accepted friendship, keeping both members' group-membership
// entries mirrored. It never touches user-created groups.
type FriendshipGroupBinder struct {
	users  repositories.UserRepository
	groups repositories.GroupRepository
}

// NewFriendshipGroupBinder creates a new FriendshipGroupBinder
func NewFriendshipGroupBinder(users repositories.UserRepository, groups repositories.GroupRepository) *FriendshipGroupBinder {
	return &FriendshipGroupBinder{users: users, groups: groups}
}

// CreateFriendshipGroup creates the backing group for an accepted friendship
// with the accepting responder as admin, and adds a membership entry to both
// users. Returns the new group id.
func (b *FriendshipGroupBinder) CreateFriendshipGroup(ctx context.Context, adminID, otherID string) (string, error) {
	now := time.Now().Unix()
	group := &models.Group{
		ID:            uuid.NewString(),
		AdminID:       adminID,
		UserIDs:       []string{adminID, otherID},
		ChallengeIDs:  []string{},
		IsBinaryGroup: true,
		CreatedAt:     now,
	}
	if err := b.groups.PutGroup(ctx, group); err != nil {
		return "", fmt.Errorf("failed to create friendship group: %w", err)
	}

	for _, userID := range []string{adminID, otherID} {
		if err := b.addMembership(ctx, userID, group.ID, now); err != nil {
			return "", err
		}
	}
	return group.ID, nil
}

// TeardownFriendshipGroup deletes the backing group and strips the
// membership entry from both users. Callers only invoke this for groups the
// binder created.
func (b *FriendshipGroupBinder) TeardownFriendshipGroup(ctx context.Context, groupID, userA, userB string) error {
	if err := b.groups.DeleteGroup(ctx, groupID); err != nil {
		return fmt.Errorf("failed to delete friendship group: %w", err)
	}

	for _, userID := range []string{userA, userB} {
		if err := b.removeMembership(ctx, userID, groupID); err != nil {
			return err
		}
	}
	return nil
}

func (b *FriendshipGroupBinder) addMembership(ctx context.Context, userID, groupID string, joinedAt int64) error {
	user, err := b.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	user.UserGroups = append(user.UserGroups, models.UserGroup{
		GroupID:  groupID,
		JoinedAt: joinedAt,
	})
	if err := b.users.PutUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save membership for user %s: %w", userID, err)
	}
	return nil
}

func (b *FriendshipGroupBinder) removeMembership(ctx context.Context, userID, groupID string) error {
	user, err := b.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	kept := user.UserGroups[:0]
	for _, membership := range user.UserGroups {
		if membership.GroupID != groupID {
			kept = append(kept, membership)
		}
	}
	user.UserGroups = kept
	if err := b.users.PutUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save membership for user %s: %w", userID, err)
	}
	return nil
}
