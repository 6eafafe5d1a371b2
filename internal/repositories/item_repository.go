package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shelvit/backend/internal/apperrors"
	"github.com/shelvit/backend/internal/models"
)

// ItemRepository defines the interface for item data operations
type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id, owner primitive.ObjectID) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Item, error)
	GetItemsByBoard(ctx context.Context, board, owner primitive.ObjectID) ([]models.Item, error)
	UpdateItemByID(ctx context.Context, id, owner primitive.ObjectID, set bson.M) error
	DeleteItemByID(ctx context.Context, id, owner primitive.ObjectID) error
	LikeItem(ctx context.Context, id primitive.ObjectID, userID string) error
	UnlikeItem(ctx context.Context, id primitive.ObjectID, userID string) error
}

// MongoItemRepository implements ItemRepository for MongoDB
type MongoItemRepository struct {
	collection *mongo.Collection
}

// NewMongoItemRepository creates a new MongoItemRepository
func NewMongoItemRepository(db *mongo.Database) *MongoItemRepository {
	return &MongoItemRepository{collection: db.Collection("items")}
}

// CreateItem inserts a new item
func (r *MongoItemRepository) CreateItem(ctx context.Context, item *models.Item) error {
	if item.Source == "" || item.Board.IsZero() {
		return apperrors.SchemaValidation
	}

	item.ID = primitive.NewObjectID()
	if item.Tags == nil {
		item.Tags = []string{}
	}
	item.CreatedAt = time.Now()
	item.ModifiedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, item)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ItemAlreadyExists
	}
	return err
}

// GetItemByID retrieves one item, scoped to the owner
func (r *MongoItemRepository) GetItemByID(ctx context.Context, id, owner primitive.ObjectID) (*models.Item, error) {
	var item models.Item
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "added_by": owner}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ItemNotExists
		}
		return nil, err
	}
	return &item, nil
}

// GetItemsByOwner retrieves all items created by one user
func (r *MongoItemRepository) GetItemsByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Item, error) {
	return r.find(ctx, bson.M{"added_by": owner})
}

// GetItemsByBoard retrieves all items filed under one board, scoped to the
// owner
func (r *MongoItemRepository) GetItemsByBoard(ctx context.Context, board, owner primitive.ObjectID) ([]models.Item, error) {
	return r.find(ctx, bson.M{"board": board, "added_by": owner})
}

func (r *MongoItemRepository) find(ctx context.Context, filter bson.M) ([]models.Item, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Item
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItemByID merges the supplied fields into the item, scoped to the
// owner
func (r *MongoItemRepository) UpdateItemByID(ctx context.Context, id, owner primitive.ObjectID, set bson.M) error {
	if len(set) == 0 {
		return apperrors.SchemaValidation
	}
	set["modified_at"] = time.Now()

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "added_by": owner}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ItemNotExists
	}
	return nil
}

// DeleteItemByID deletes one item, scoped to the owner
func (r *MongoItemRepository) DeleteItemByID(ctx context.Context, id, owner primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "added_by": owner})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.ItemNotExists
	}
	return nil
}

// LikeItem records userID as a liker and bumps the like count. Liking is not
// owner-scoped: any authenticated user may like any item, once.
func (r *MongoItemRepository) LikeItem(ctx context.Context, id primitive.ObjectID, userID string) error {
	filter := bson.M{"_id": id, "liked_by": bson.M{"$ne": userID}}
	update := bson.M{
		"$addToSet": bson.M{"liked_by": userID},
		"$inc":      bson.M{"like_count": 1},
		"$set":      bson.M{"modified_at": time.Now()},
	}
	return r.toggleLike(ctx, id, filter, update)
}

// UnlikeItem removes userID from the likers and drops the like count
func (r *MongoItemRepository) UnlikeItem(ctx context.Context, id primitive.ObjectID, userID string) error {
	filter := bson.M{"_id": id, "liked_by": userID}
	update := bson.M{
		"$pull": bson.M{"liked_by": userID},
		"$inc":  bson.M{"like_count": -1},
		"$set":  bson.M{"modified_at": time.Now()},
	}
	return r.toggleLike(ctx, id, filter, update)
}

func (r *MongoItemRepository) toggleLike(ctx context.Context, id primitive.ObjectID, filter, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// No match: either the item is gone or the like state already holds.
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.EntryDoesnotExists
	}
	return apperrors.ActionAlreadyDone
}
