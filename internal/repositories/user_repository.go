package repositories

import (
	"context"
	"time"

	"github.com/zikrhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user data operations. Lookups
// return (nil, nil) when no document matches.
type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	PutUser(ctx context.Context, user *models.User) error
	FindAllByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// GetUserByID retrieves a user by id from MongoDB
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// PutUser upserts the full user document
func (r *MongoUserRepository) PutUser(ctx context.Context, user *models.User) error {
	user.ModifiedAt = time.Now().Unix()
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, opts)
	return err
}

// FindAllByIDs retrieves every user whose id is in ids
func (r *MongoUserRepository) FindAllByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var users []models.User
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
