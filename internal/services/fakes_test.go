package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zikrhub/backend/internal/models"
	"github.com/zikrhub/backend/internal/repositories"
	"github.com/zikrhub/backend/pkg/azkar"
	"github.com/zikrhub/backend/pkg/logger"
)

// In-memory repository fakes. Lookups return deep copies so a service
// mutation only becomes visible after an explicit Put, matching the store
// semantics the services are written against.

type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*models.User{}}
}

func (r *memUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(user), nil
}

func (r *memUserRepo) PutUser(_ context.Context, user *models.User) error {
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *memUserRepo) FindAllByIDs(_ context.Context, ids []string) ([]models.User, error) {
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			out = append(out, *cloneUser(user))
		}
	}
	return out, nil
}

func cloneUser(in *models.User) *models.User {
	out := *in
	out.UserGroups = append([]models.UserGroup(nil), in.UserGroups...)
	out.ChallengeStatuses = append([]models.UserChallengeStatus(nil), in.ChallengeStatuses...)
	out.PersonalChallenges = make([]models.Challenge, len(in.PersonalChallenges))
	for i := range in.PersonalChallenges {
		out.PersonalChallenges[i] = *cloneChallenge(&in.PersonalChallenges[i])
	}
	return &out
}

func cloneChallenge(in *models.Challenge) *models.Challenge {
	out := *in
	out.UsersAccepted = append([]string(nil), in.UsersAccepted...)
	out.UsersFinished = append([]string(nil), in.UsersFinished...)
	out.SubChallenges = append([]models.SubChallenge(nil), in.SubChallenges...)
	return &out
}

type memFriendshipRepo struct {
	records map[string]*models.FriendshipRecord
	order   []string
}

func newMemFriendshipRepo() *memFriendshipRepo {
	return &memFriendshipRepo{records: map[string]*models.FriendshipRecord{}}
}

func (r *memFriendshipRepo) GetByPair(_ context.Context, userA, userB string) (*models.FriendshipRecord, error) {
	_, _, key := models.PairKey(userA, userB)
	record, ok := r.records[key]
	if !ok {
		return nil, nil
	}
	clone := *record
	return &clone, nil
}

func (r *memFriendshipRepo) FindByUserID(_ context.Context, userID string) ([]models.FriendshipRecord, error) {
	var out []models.FriendshipRecord
	for _, key := range r.order {
		if record := r.records[key]; record.Involves(userID) {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (r *memFriendshipRepo) PutRecord(_ context.Context, record *models.FriendshipRecord) error {
	if _, ok := r.records[record.ID]; !ok {
		r.order = append(r.order, record.ID)
	}
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *memFriendshipRepo) DeleteRecord(_ context.Context, id string) error {
	delete(r.records, id)
	kept := r.order[:0]
	for _, key := range r.order {
		if key != id {
			kept = append(kept, key)
		}
	}
	r.order = kept
	return nil
}

type memGroupRepo struct {
	groups map[string]*models.Group
}

func newMemGroupRepo() *memGroupRepo {
	return &memGroupRepo{groups: map[string]*models.Group{}}
}

func (r *memGroupRepo) GetGroupByID(_ context.Context, id string) (*models.Group, error) {
	group, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	return cloneGroup(group), nil
}

func (r *memGroupRepo) PutGroup(_ context.Context, group *models.Group) error {
	r.groups[group.ID] = cloneGroup(group)
	return nil
}

func (r *memGroupRepo) DeleteGroup(_ context.Context, id string) error {
	delete(r.groups, id)
	return nil
}

func cloneGroup(in *models.Group) *models.Group {
	out := *in
	out.UserIDs = append([]string(nil), in.UserIDs...)
	out.ChallengeIDs = append([]string(nil), in.ChallengeIDs...)
	return &out
}

type memChallengeRepo struct {
	challenges map[string]*models.Challenge
}

func newMemChallengeRepo() *memChallengeRepo {
	return &memChallengeRepo{challenges: map[string]*models.Challenge{}}
}

func (r *memChallengeRepo) GetChallengeByID(_ context.Context, id string) (*models.Challenge, error) {
	challenge, ok := r.challenges[id]
	if !ok {
		return nil, nil
	}
	return cloneChallenge(challenge), nil
}

func (r *memChallengeRepo) PutChallenge(_ context.Context, challenge *models.Challenge) error {
	r.challenges[challenge.ID] = cloneChallenge(challenge)
	return nil
}

func (r *memChallengeRepo) FindAllByIDs(_ context.Context, ids []string) ([]models.Challenge, error) {
	out := make([]models.Challenge, 0, len(ids))
	for _, id := range ids {
		if challenge, ok := r.challenges[id]; ok {
			out = append(out, *cloneChallenge(challenge))
		}
	}
	return out, nil
}

// memProgressRepo is the independent-policy progress store: one counter list
// per (challenge, user), seeded from the definition on first read.
type memProgressRepo struct {
	progress map[string][]models.SubChallenge
}

func newMemProgressRepo() *memProgressRepo {
	return &memProgressRepo{progress: map[string][]models.SubChallenge{}}
}

func (r *memProgressRepo) GetProgress(_ context.Context, challenge *models.Challenge, userID string) ([]models.SubChallenge, error) {
	if subs, ok := r.progress[models.ProgressKey(challenge.ID, userID)]; ok {
		return append([]models.SubChallenge(nil), subs...), nil
	}
	return append([]models.SubChallenge(nil), challenge.SubChallenges...), nil
}

func (r *memProgressRepo) SaveProgress(_ context.Context, challenge *models.Challenge, userID string, subs []models.SubChallenge) error {
	r.progress[models.ProgressKey(challenge.ID, userID)] = append([]models.SubChallenge(nil), subs...)
	return nil
}

// memScoreLedger mimics the unique (group, user, challenge) index: a
// replayed append is silently dropped.
type memScoreLedger struct {
	entries []models.ScoreEntry
	seen    map[string]struct{}
}

func newMemScoreLedger() *memScoreLedger {
	return &memScoreLedger{seen: map[string]struct{}{}}
}

func (r *memScoreLedger) Append(_ context.Context, entry *models.ScoreEntry) error {
	key := entry.GroupID + "|" + entry.UserID + "|" + entry.ChallengeID
	if _, dup := r.seen[key]; dup {
		return nil
	}
	r.seen[key] = struct{}{}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memScoreLedger) GetScore(_ context.Context, groupID, userID string) (int, error) {
	total := 0
	for _, entry := range r.entries {
		if entry.GroupID == groupID && entry.UserID == userID {
			total += entry.Delta
		}
	}
	return total, nil
}

type fakeClock struct {
	now int64
}

func (c *fakeClock) Now() int64 {
	return c.now
}

type sentNotification struct {
	UserID string
	Title  string
	Body   string
}

type recordingSink struct {
	sent []sentNotification
}

func (s *recordingSink) Notify(_ context.Context, user *models.User, title, body string) {
	s.sent = append(s.sent, sentNotification{UserID: user.ID, Title: title, Body: body})
}

type testEnv struct {
	users       *memUserRepo
	friendships *memFriendshipRepo
	groups      *memGroupRepo
	challenges  *memChallengeRepo
	progress    repositories.ProgressRepository
	ledger      *memScoreLedger
	clk         *fakeClock
	sink        *recordingSink

	friendshipSvc  FriendshipService
	challengeSvc   ChallengeService
	leaderboardSvc LeaderboardService
}

func newTestEnv(t *testing.T, progressMode string) *testEnv {
	t.Helper()

	env := &testEnv{
		users:       newMemUserRepo(),
		friendships: newMemFriendshipRepo(),
		groups:      newMemGroupRepo(),
		challenges:  newMemChallengeRepo(),
		ledger:      newMemScoreLedger(),
		clk:         &fakeClock{now: 1_000_000},
		sink:        &recordingSink{},
	}

	if progressMode == repositories.ProgressModeShared {
		env.progress = repositories.NewSharedProgressRepository(env.challenges)
	} else {
		env.progress = newMemProgressRepo()
	}

	catalog := azkar.NewCatalog([]models.Zekr{
		{ID: 1, Text: "subhan allah"},
		{ID: 2, Text: "alhamdulillah"},
		{ID: 3, Text: "allahu akbar"},
	})
	log := logger.NewLogger("test")
	binder := NewFriendshipGroupBinder(env.users, env.groups)

	env.friendshipSvc = NewFriendshipService(env.users, env.friendships, binder, env.sink)
	env.challengeSvc = NewChallengeService(
		env.users, env.groups, env.challenges, env.progress, env.ledger,
		catalog, env.sink, env.clk, log,
	)
	env.leaderboardSvc = NewLeaderboardService(env.users, env.friendships, env.ledger)
	return env
}

func (e *testEnv) addUser(t *testing.T, id string) *models.User {
	t.Helper()
	user := &models.User{ID: id, Username: id, FirstName: id, LastName: "tester"}
	require.NoError(t, e.users.PutUser(context.Background(), user))
	return user
}

// befriend runs the full request/accept exchange and returns the id of the
// backing friendship group.
func (e *testEnv) befriend(t *testing.T, a, b string) string {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.friendshipSvc.SendRequest(ctx, a, b))
	require.NoError(t, e.friendshipSvc.ResolveRequest(ctx, b, a, true))

	record, err := e.friendships.GetByPair(ctx, a, b)
	require.NoError(t, err)
	require.NotNil(t, record)
	require.NotEmpty(t, record.GroupID)
	return record.GroupID
}

func (e *testEnv) createChallenge(t *testing.T, userID, groupID string, defs []models.SubChallengeDefinition) *models.Challenge {
	t.Helper()
	challenge, err := e.challengeSvc.AddGroupChallenge(context.Background(), userID, &models.AddChallengeRequest{
		GroupID:       groupID,
		Name:          "morning azkar",
		ExpiryDate:    e.clk.Now() + 3600,
		SubChallenges: defs,
	})
	require.NoError(t, err)
	return challenge
}

// complete submits an all-zero counter list for the challenge.
func (e *testEnv) complete(t *testing.T, userID string, challenge *models.Challenge) {
	t.Helper()
	updates := make([]models.SubChallengeUpdate, len(challenge.SubChallenges))
	for i, sub := range challenge.SubChallenges {
		updates[i] = models.SubChallengeUpdate{ZekrID: sub.ZekrID, LeftRepetitions: 0}
	}
	require.NoError(t, e.challengeSvc.UpdateChallenge(context.Background(), userID, challenge.ID, updates))
}
