package repositories

import (
	"context"
	"time"

	"github.com/zikrhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FriendshipRepository defines the interface for friendship pair records.
// Lookups return (nil, nil) when no record exists for the pair.
type FriendshipRepository interface {
	GetByPair(ctx context.Context, userA, userB string) (*models.FriendshipRecord, error)
	FindByUserID(ctx context.Context, userID string) ([]models.FriendshipRecord, error)
	PutRecord(ctx context.Context, record *models.FriendshipRecord) error
	DeleteRecord(ctx context.Context, id string) error
}

// MongoFriendshipRepository implements FriendshipRepository for MongoDB
type MongoFriendshipRepository struct {
	collection *mongo.Collection
}

// NewMongoFriendshipRepository creates a new MongoFriendshipRepository
func NewMongoFriendshipRepository(db *mongo.Database) *MongoFriendshipRepository {
	return &MongoFriendshipRepository{collection: db.Collection("friendships")}
}

// GetByPair retrieves the record for an unordered user pair
func (r *MongoFriendshipRepository) GetByPair(ctx context.Context, userA, userB string) (*models.FriendshipRecord, error) {
	_, _, key := models.PairKey(userA, userB)

	var record models.FriendshipRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindByUserID retrieves every record the user is one side of, in insertion
// order
func (r *MongoFriendshipRepository) FindByUserID(ctx context.Context, userID string) ([]models.FriendshipRecord, error) {
	filter := bson.M{"$or": []bson.M{
		{"lo_user_id": userID},
		{"hi_user_id": userID},
	}}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	var records []models.FriendshipRecord
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// PutRecord upserts a pair record
func (r *MongoFriendshipRepository) PutRecord(ctx context.Context, record *models.FriendshipRecord) error {
	record.ModifiedAt = time.Now().Unix()
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": record.ID}, record, opts)
	return err
}

// DeleteRecord removes a pair record by id
func (r *MongoFriendshipRepository) DeleteRecord(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
