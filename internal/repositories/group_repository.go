package repositories

import (
	"context"
	"time"

	"github.com/zikrhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GroupRepository defines the interface for group data operations. Lookups
// return (nil, nil) when no document matches.
type GroupRepository interface {
	GetGroupByID(ctx context.Context, id string) (*models.Group, error)
	PutGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, id string) error
}

// MongoGroupRepository implements GroupRepository for MongoDB
type MongoGroupRepository struct {
	collection *mongo.Collection
}

// NewMongoGroupRepository creates a new MongoGroupRepository
func NewMongoGroupRepository(db *mongo.Database) *MongoGroupRepository {
	return &MongoGroupRepository{collection: db.Collection("groups")}
}

// GetGroupByID retrieves a group by id from MongoDB
func (r *MongoGroupRepository) GetGroupByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// PutGroup upserts the full group document
func (r *MongoGroupRepository) PutGroup(ctx context.Context, group *models.Group) error {
	group.ModifiedAt = time.Now().Unix()
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": group.ID}, group, opts)
	return err
}

// DeleteGroup removes a group document by id
func (r *MongoGroupRepository) DeleteGroup(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
