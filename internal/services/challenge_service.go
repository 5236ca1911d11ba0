package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zikrhub/backend/internal/models"
	"github.com/zikrhub/backend/internal/repositories"
	"github.com/zikrhub/backend/pkg/azkar"
	"github.com/zikrhub/backend/pkg/clock"
	"github.com/zikrhub/backend/pkg/logger"
)

// ChallengeService owns challenge creation and the progress state machine:
// validating repetition updates, deciding completion and crediting the score
// ledger exactly once per completion.
type ChallengeService interface {
	AddGroupChallenge(ctx context.Context, userID string, req *models.AddChallengeRequest) (*models.Challenge, error)
	AddPersonalChallenge(ctx context.Context, userID string, req *models.AddPersonalChallengeRequest) (*models.Challenge, error)
	GetChallenge(ctx context.Context, userID, challengeID string) (*models.Challenge, error)
	GetChallenges(ctx context.Context, userID string) ([]models.Challenge, error)
	GetChallengesInGroup(ctx context.Context, userID, groupID string) ([]models.Challenge, error)
	GetPersonalChallenges(ctx context.Context, userID string) ([]models.Challenge, error)
	UpdateChallenge(ctx context.Context, userID, challengeID string, updates []models.SubChallengeUpdate) error
	UpdatePersonalChallenge(ctx context.Context, userID, challengeID string, updates []models.SubChallengeUpdate) error
}

type challengeService struct {
	users      repositories.UserRepository
	groups     repositories.GroupRepository
	challenges repositories.ChallengeRepository
	progress   repositories.ProgressRepository
	ledger     repositories.ScoreLedgerRepository
	catalog    *azkar.Catalog
	notifier   NotificationSink
	clock      clock.Clock
	log        *logger.Logger
}

// NewChallengeService creates a new ChallengeService
func NewChallengeService(
	users repositories.UserRepository,
	groups repositories.GroupRepository,
	challenges repositories.ChallengeRepository,
	progress repositories.ProgressRepository,
	ledger repositories.ScoreLedgerRepository,
	catalog *azkar.Catalog,
	notifier NotificationSink,
	clk clock.Clock,
	log *logger.Logger,
) ChallengeService {
	return &challengeService{
		users:      users,
		groups:     groups,
		challenges: challenges,
		progress:   progress,
		ledger:     ledger,
		catalog:    catalog,
		notifier:   notifier,
		clock:      clk,
		log:        log,
	}
}

// AddGroupChallenge creates a challenge in a group the user belongs to,
// attaches a status entry to every member and notifies the others.
func (s *challengeService) AddGroupChallenge(ctx context.Context, userID string, req *models.AddChallengeRequest) (*models.Challenge, error) {
	subs, err := s.buildSubChallenges(req.SubChallenges)
	if err != nil {
		return nil, err
	}
	if req.ExpiryDate <= s.clock.Now() {
		return nil, ErrMalformedChallenge
	}

	group, err := s.groups.GetGroupByID(ctx, req.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group %s: %w", req.GroupID, err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	if !group.Contains(userID) {
		return nil, ErrNotGroupMember
	}

	now := s.clock.Now()
	challenge := &models.Challenge{
		ID:             uuid.NewString(),
		GroupID:        group.ID,
		Name:           req.Name,
		Motivation:     req.Motivation,
		ExpiryDate:     req.ExpiryDate,
		CreatingUserID: userID,
		IsOngoing:      len(group.UserIDs) == 1,
		UsersAccepted:  []string{userID},
		UsersFinished:  []string{},
		SubChallenges:  subs,
		CreatedAt:      now,
	}
	if err := s.challenges.PutChallenge(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to save challenge: %w", err)
	}

	group.ChallengeIDs = append(group.ChallengeIDs, challenge.ID)
	if err := s.groups.PutGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to save group %s: %w", group.ID, err)
	}

	members, err := s.users.FindAllByIDs(ctx, group.UserIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load group members: %w", err)
	}

	var creator *models.User
	for i := range members {
		if members[i].ID == userID {
			creator = &members[i]
		}
	}

	for i := range members {
		member := &members[i]
		member.ChallengeStatuses = append(member.ChallengeStatuses, models.UserChallengeStatus{
			ChallengeID: challenge.ID,
			GroupID:     group.ID,
			IsOngoing:   challenge.IsOngoing,
			IsAccepted:  member.ID == userID,
		})
		if err := s.users.PutUser(ctx, member); err != nil {
			return nil, fmt.Errorf("failed to save user %s: %w", member.ID, err)
		}
		if member.ID != userID && creator != nil {
			s.notifier.Notify(ctx, member, "New challenge",
				fmt.Sprintf("%s %s challenged you", creator.FirstName, creator.LastName))
		}
	}
	return challenge, nil
}

// AddPersonalChallenge creates a challenge on the user's own list, outside
// any group. Personal challenges never score.
func (s *challengeService) AddPersonalChallenge(ctx context.Context, userID string, req *models.AddPersonalChallengeRequest) (*models.Challenge, error) {
	subs, err := s.buildSubChallenges(req.SubChallenges)
	if err != nil {
		return nil, err
	}
	if req.ExpiryDate <= s.clock.Now() {
		return nil, ErrMalformedChallenge
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := s.clock.Now()
	challenge := models.Challenge{
		ID:             uuid.NewString(),
		GroupID:        models.NoGroupID,
		Name:           req.Name,
		Motivation:     req.Motivation,
		ExpiryDate:     req.ExpiryDate,
		CreatingUserID: userID,
		UsersAccepted:  []string{userID},
		UsersFinished:  []string{},
		SubChallenges:  subs,
		CreatedAt:      now,
		ModifiedAt:     now,
	}
	user.PersonalChallenges = append(user.PersonalChallenges, challenge)
	if err := s.users.PutUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user %s: %w", userID, err)
	}
	return &challenge, nil
}

// GetChallenge returns one of the user's group challenges.
func (s *challengeService) GetChallenge(ctx context.Context, userID, challengeID string) (*models.Challenge, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if findStatus(user, challengeID) == nil {
		return nil, ErrChallengeNotFound
	}

	challenge, err := s.challenges.GetChallengeByID(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge %s: %w", challengeID, err)
	}
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}
	return challenge, nil
}

// GetChallenges returns all of the user's group challenges, newest first.
func (s *challengeService) GetChallenges(ctx context.Context, userID string) ([]models.Challenge, error) {
	return s.getChallengesFiltered(ctx, userID, func(models.UserChallengeStatus) bool { return true })
}

// GetChallengesInGroup returns the user's challenges within one group,
// newest first.
func (s *challengeService) GetChallengesInGroup(ctx context.Context, userID, groupID string) ([]models.Challenge, error) {
	group, err := s.groups.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group %s: %w", groupID, err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	if !group.Contains(userID) {
		return nil, ErrNotGroupMember
	}
	return s.getChallengesFiltered(ctx, userID, func(st models.UserChallengeStatus) bool {
		return st.GroupID == groupID
	})
}

func (s *challengeService) getChallengesFiltered(ctx context.Context, userID string, keep func(models.UserChallengeStatus) bool) ([]models.Challenge, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	ids := make([]string, 0, len(user.ChallengeStatuses))
	for _, status := range user.ChallengeStatuses {
		if keep(status) {
			ids = append(ids, status.ChallengeID)
		}
	}

	challenges, err := s.challenges.FindAllByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenges: %w", err)
	}

	// Newest first: memberships are appended in creation order.
	byID := make(map[string]models.Challenge, len(challenges))
	for _, c := range challenges {
		byID[c.ID] = c
	}
	ordered := make([]models.Challenge, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if c, ok := byID[ids[i]]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

// GetPersonalChallenges returns the user's personal challenges, newest first.
func (s *challengeService) GetPersonalChallenges(ctx context.Context, userID string) ([]models.Challenge, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	personal := make([]models.Challenge, len(user.PersonalChallenges))
	for i, c := range user.PersonalChallenges {
		personal[len(personal)-1-i] = c
	}
	return personal, nil
}

// UpdateChallenge applies new left-repetition counters to one of the user's
// group challenges. A transition into the all-zero state credits the score
// ledger exactly once and marks the user finished.
func (s *challengeService) UpdateChallenge(ctx context.Context, userID, challengeID string, updates []models.SubChallengeUpdate) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	status := findStatus(user, challengeID)
	if status == nil {
		return ErrChallengeNotFound
	}

	challenge, err := s.challenges.GetChallengeByID(ctx, challengeID)
	if err != nil {
		return fmt.Errorf("failed to load challenge %s: %w", challengeID, err)
	}
	if challenge == nil {
		return ErrChallengeNotFound
	}
	if challenge.ExpiryDate < s.clock.Now() {
		return ErrChallengeExpired
	}

	stored, err := s.progress.GetProgress(ctx, challenge, userID)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	wasComplete := allRepetitionsDone(stored)
	updated, err := s.applySubChallengeUpdates(userID, challengeID, stored, updates)
	if err != nil {
		return err
	}
	isComplete := allRepetitionsDone(updated)

	if err := s.progress.SaveProgress(ctx, challenge, userID, updated); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	if isComplete && !wasComplete {
		if !challenge.IsPersonal() {
			entry := &models.ScoreEntry{
				GroupID:     challenge.GroupID,
				UserID:      userID,
				ChallengeID: challenge.ID,
				Delta:       1,
			}
			if err := s.ledger.Append(ctx, entry); err != nil {
				return fmt.Errorf("failed to credit score: %w", err)
			}
		}

		status.IsFinished = true
		if err := s.users.PutUser(ctx, user); err != nil {
			return fmt.Errorf("failed to save user %s: %w", userID, err)
		}

		if !containsString(challenge.UsersFinished, userID) {
			challenge.UsersFinished = append(challenge.UsersFinished, userID)
			if err := s.challenges.PutChallenge(ctx, challenge); err != nil {
				return fmt.Errorf("failed to save challenge %s: %w", challengeID, err)
			}
		}
	}
	return nil
}

// UpdatePersonalChallenge applies new counters to one of the user's personal
// challenges. Personal challenges belong to exactly one user and never
// score.
func (s *challengeService) UpdatePersonalChallenge(ctx context.Context, userID, challengeID string, updates []models.SubChallengeUpdate) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	var challenge *models.Challenge
	for i := range user.PersonalChallenges {
		if user.PersonalChallenges[i].ID == challengeID {
			challenge = &user.PersonalChallenges[i]
			break
		}
	}
	if challenge == nil {
		return ErrChallengeNotFound
	}
	if challenge.ExpiryDate < s.clock.Now() {
		return ErrChallengeExpired
	}

	stored := make([]models.SubChallenge, len(challenge.SubChallenges))
	copy(stored, challenge.SubChallenges)
	updated, err := s.applySubChallengeUpdates(userID, challengeID, stored, updates)
	if err != nil {
		return err
	}

	challenge.SubChallenges = updated
	if err := s.users.PutUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save user %s: %w", userID, err)
	}
	return nil
}

// applySubChallengeUpdates validates the submitted counters against the
// stored list and returns the updated list. Counters may only decrease;
// negative submissions are clamped to zero and logged. The stored slice is
// not shared with callers' persistent state, so failures leave nothing
// half-applied.
func (s *challengeService) applySubChallengeUpdates(userID, challengeID string, stored []models.SubChallenge, updates []models.SubChallengeUpdate) ([]models.SubChallenge, error) {
	if len(updates) != len(stored) {
		return nil, ErrSubChallengeCountMismatch
	}

	// Track distinct zekr ids to catch duplicated or missing entries.
	seen := make(map[int]struct{}, len(updates))
	for _, update := range updates {
		seen[update.ZekrID] = struct{}{}

		target := findSubChallenge(stored, update.ZekrID)
		if target == nil {
			return nil, ErrUnknownSubChallenge
		}

		left := update.LeftRepetitions
		if left > target.LeftRepetitions {
			return nil, ErrRepetitionsIncreased
		}
		if left < 0 {
			s.log.WithUserID(userID).WithField("challenge_id", challengeID).
				Warnf("received negative left repetitions %d for zekr %d, clamping to zero", left, update.ZekrID)
			left = 0
		}
		target.LeftRepetitions = left
	}
	if len(seen) != len(stored) {
		return nil, ErrMalformedSubChallenges
	}
	return stored, nil
}

// buildSubChallenges materializes creation-time definitions, resolving zekr
// text from the catalogue and rejecting duplicate or unknown zekr ids.
func (s *challengeService) buildSubChallenges(defs []models.SubChallengeDefinition) ([]models.SubChallenge, error) {
	subs := make([]models.SubChallenge, 0, len(defs))
	seen := make(map[int]struct{}, len(defs))
	for _, def := range defs {
		if def.Repetitions <= 0 {
			return nil, ErrMalformedChallenge
		}
		if _, dup := seen[def.ZekrID]; dup {
			return nil, ErrMalformedChallenge
		}
		seen[def.ZekrID] = struct{}{}

		text, ok := s.catalog.Lookup(def.ZekrID)
		if !ok {
			return nil, ErrMalformedChallenge
		}
		subs = append(subs, models.SubChallenge{
			ZekrID:              def.ZekrID,
			Zekr:                text,
			OriginalRepetitions: def.Repetitions,
			LeftRepetitions:     def.Repetitions,
		})
	}
	return subs, nil
}

func findStatus(user *models.User, challengeID string) *models.UserChallengeStatus {
	for i := range user.ChallengeStatuses {
		if user.ChallengeStatuses[i].ChallengeID == challengeID {
			return &user.ChallengeStatuses[i]
		}
	}
	return nil
}

func findSubChallenge(subs []models.SubChallenge, zekrID int) *models.SubChallenge {
	for i := range subs {
		if subs[i].ZekrID == zekrID {
			return &subs[i]
		}
	}
	return nil
}

func allRepetitionsDone(subs []models.SubChallenge) bool {
	for _, sub := range subs {
		if sub.LeftRepetitions != 0 {
			return false
		}
	}
	return true
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
