package repositories

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"userapi/internal/apperrors"
	"userapi/internal/models"
)

// MongoUserRepository is a MongoDB implementation of UserRepository.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of MongoUserRepository
// backed by the "users" collection of the given database.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection("users"),
	}
}

// EnsureIndexes creates the unique index on email. Uniqueness is enforced
// by the store, not pre-checked, so a conflicting write fails at insert
// time instead of racing a lookup.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

// Create inserts a new user.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// Find returns one page of users matching the query plus the total number
// of matching records. One query plus one count, nothing else.
func (r *MongoUserRepository) Find(ctx context.Context, q models.UserQuery) ([]models.User, int64, error) {
	filter := listFilter(q)

	order := 1
	if q.SortDesc {
		order = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: q.SortField, Value: order}}).
		SetSkip(q.Skip()).
		SetLimit(q.Limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	return users, total, nil
}

// GetByID retrieves a user by its hex object id.
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &user, nil
}

// Update applies a partial update and returns the record as it is after
// the write.
func (r *MongoUserRepository) Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return &user, nil
}

// Delete removes a user by its hex object id.
func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrUserNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// listFilter builds the Mongo filter for a listing query: case-insensitive
// substring matches on name and email. Patterns are quoted so user input
// matches literally instead of being interpreted as a regex.
func listFilter(q models.UserQuery) bson.M {
	filter := bson.M{}
	if q.Name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Name), Options: "i"}
	}
	if q.Email != "" {
		filter["email"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Email), Options: "i"}
	}
	return filter
}
