package repositories

import (
	"context"
	"time"

	"github.com/zikrhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChallengeRepository defines the interface for challenge data operations.
// Lookups return (nil, nil) when no document matches.
type ChallengeRepository interface {
	GetChallengeByID(ctx context.Context, id string) (*models.Challenge, error)
	PutChallenge(ctx context.Context, challenge *models.Challenge) error
	FindAllByIDs(ctx context.Context, ids []string) ([]models.Challenge, error)
}

// MongoChallengeRepository implements ChallengeRepository for MongoDB
type MongoChallengeRepository struct {
	collection *mongo.Collection
}

// NewMongoChallengeRepository creates a new MongoChallengeRepository
func NewMongoChallengeRepository(db *mongo.Database) *MongoChallengeRepository {
	return &MongoChallengeRepository{collection: db.Collection("challenges")}
}

// GetChallengeByID retrieves a challenge by id from MongoDB
func (r *MongoChallengeRepository) GetChallengeByID(ctx context.Context, id string) (*models.Challenge, error) {
	var challenge models.Challenge
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&challenge)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &challenge, nil
}

// PutChallenge upserts the full challenge document
func (r *MongoChallengeRepository) PutChallenge(ctx context.Context, challenge *models.Challenge) error {
	challenge.ModifiedAt = time.Now().Unix()
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": challenge.ID}, challenge, opts)
	return err
}

// FindAllByIDs retrieves every challenge whose id is in ids
func (r *MongoChallengeRepository) FindAllByIDs(ctx context.Context, ids []string) ([]models.Challenge, error) {
	var challenges []models.Challenge
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}
