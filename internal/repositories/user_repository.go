package repositories

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shelvit/backend/internal/apperrors"
	"github.com/shelvit/backend/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	AttachBoard(ctx context.Context, userID, boardID primitive.ObjectID) error
	DetachBoard(ctx context.Context, userID, boardID primitive.ObjectID) error
	AttachItem(ctx context.Context, userID, itemID primitive.ObjectID) error
	DetachItem(ctx context.Context, userID, itemID primitive.ObjectID) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser inserts a new user. Duplicate-key violations are mapped to the
// colliding field so signup can distinguish a taken username from a taken
// email address.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.Username == "" || user.Email == "" || user.Password == "" {
		return apperrors.SchemaValidation
	}

	user.ID = primitive.NewObjectID()
	user.IsActive = true
	user.CreatedAt = time.Now()
	user.ModifiedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return duplicateUserField(err)
	}
	return err
}

// duplicateUserField inspects a duplicate-key error for the violated index
func duplicateUserField(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "username") {
		return apperrors.UserNameAlreadyTaken
	}
	if strings.Contains(msg, "email") {
		return apperrors.EmailAlreadyExists
	}
	return apperrors.ItemAlreadyExists
}

// GetUserByID retrieves a user by ObjectID
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.UserDoesnotExist
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.UserDoesnotExist
		}
		return nil, err
	}
	return &user, nil
}

// AttachBoard adds a board to the user's back-reference list
func (r *MongoUserRepository) AttachBoard(ctx context.Context, userID, boardID primitive.ObjectID) error {
	return r.push(ctx, userID, "boards", boardID)
}

// DetachBoard removes a board from the user's back-reference list
func (r *MongoUserRepository) DetachBoard(ctx context.Context, userID, boardID primitive.ObjectID) error {
	return r.pull(ctx, userID, "boards", boardID)
}

// AttachItem adds an item to the user's back-reference list
func (r *MongoUserRepository) AttachItem(ctx context.Context, userID, itemID primitive.ObjectID) error {
	return r.push(ctx, userID, "items", itemID)
}

// DetachItem removes an item from the user's back-reference list
func (r *MongoUserRepository) DetachItem(ctx context.Context, userID, itemID primitive.ObjectID) error {
	return r.pull(ctx, userID, "items", itemID)
}

func (r *MongoUserRepository) push(ctx context.Context, userID primitive.ObjectID, field string, ref primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{field: ref},
		"$set":      bson.M{"modified_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}

func (r *MongoUserRepository) pull(ctx context.Context, userID primitive.ObjectID, field string, ref primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{field: ref},
		"$set":  bson.M{"modified_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}
