package repositories

import (
	"context"
	"time"

	"github.com/zikrhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Progress policy modes, selected by CHALLENGE_PROGRESS_MODE.
const (
	ProgressModeIndependent = "independent"
	ProgressModeShared      = "shared"
)

// ProgressRepository abstracts where a user's repetition counters for a
// challenge live. The shared implementation keeps the original behavior of a
// single mutable sub-challenge list on the challenge document; the
// independent implementation gives every user their own projection seeded
// from the challenge definition.
type ProgressRepository interface {
	GetProgress(ctx context.Context, challenge *models.Challenge, userID string) ([]models.SubChallenge, error)
	SaveProgress(ctx context.Context, challenge *models.Challenge, userID string, subs []models.SubChallenge) error
}

// SharedProgressRepository stores progress on the challenge document itself;
// all group members share one trajectory.
type SharedProgressRepository struct {
	challenges ChallengeRepository
}

// NewSharedProgressRepository creates a new SharedProgressRepository
func NewSharedProgressRepository(challenges ChallengeRepository) *SharedProgressRepository {
	return &SharedProgressRepository{challenges: challenges}
}

// GetProgress returns a copy of the challenge's sub-challenge list
func (r *SharedProgressRepository) GetProgress(ctx context.Context, challenge *models.Challenge, userID string) ([]models.SubChallenge, error) {
	subs := make([]models.SubChallenge, len(challenge.SubChallenges))
	copy(subs, challenge.SubChallenges)
	return subs, nil
}

// SaveProgress writes the updated counters back onto the challenge document
func (r *SharedProgressRepository) SaveProgress(ctx context.Context, challenge *models.Challenge, userID string, subs []models.SubChallenge) error {
	challenge.SubChallenges = subs
	return r.challenges.PutChallenge(ctx, challenge)
}

// MongoProgressRepository stores one progress document per (challenge, user)
// pair, seeded from the challenge definition on first read.
type MongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new MongoProgressRepository
func NewMongoProgressRepository(db *mongo.Database) *MongoProgressRepository {
	return &MongoProgressRepository{collection: db.Collection("challenge_progress")}
}

// GetProgress retrieves the user's counters, falling back to the pristine
// definition when the user has not reported progress yet
func (r *MongoProgressRepository) GetProgress(ctx context.Context, challenge *models.Challenge, userID string) ([]models.SubChallenge, error) {
	var progress models.ChallengeProgress
	err := r.collection.FindOne(ctx, bson.M{"_id": models.ProgressKey(challenge.ID, userID)}).Decode(&progress)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			subs := make([]models.SubChallenge, len(challenge.SubChallenges))
			copy(subs, challenge.SubChallenges)
			return subs, nil
		}
		return nil, err
	}
	return progress.SubChallenges, nil
}

// SaveProgress upserts the user's progress document
func (r *MongoProgressRepository) SaveProgress(ctx context.Context, challenge *models.Challenge, userID string, subs []models.SubChallenge) error {
	progress := models.ChallengeProgress{
		ID:            models.ProgressKey(challenge.ID, userID),
		ChallengeID:   challenge.ID,
		UserID:        userID,
		SubChallenges: subs,
		ModifiedAt:    time.Now().Unix(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": progress.ID}, progress, opts)
	return err
}
