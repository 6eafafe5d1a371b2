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
	"github.com/shelvit/backend/pkg/slug"
)

// Reads, updates and deletes are always filtered by the owner as well as the
// lookup key, so a cross-user access surfaces as a plain miss.

// BoardRepository defines the interface for board data operations
type BoardRepository interface {
	CreateBoard(ctx context.Context, board *models.Board) error
	GetBoardBySlug(ctx context.Context, s string, owner primitive.ObjectID) (*models.Board, error)
	GetBoardByTitle(ctx context.Context, title string, owner primitive.ObjectID) (*models.Board, error)
	GetBoardsByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Board, error)
	UpdateBoardByID(ctx context.Context, id, owner primitive.ObjectID, set bson.M) error
	DeleteBoardBySlug(ctx context.Context, s string, owner primitive.ObjectID) (*models.Board, error)
}

// MongoBoardRepository implements BoardRepository for MongoDB
type MongoBoardRepository struct {
	collection *mongo.Collection
}

// NewMongoBoardRepository creates a new MongoBoardRepository
func NewMongoBoardRepository(db *mongo.Database) *MongoBoardRepository {
	return &MongoBoardRepository{collection: db.Collection("boards")}
}

const slugAttempts = 5

// CreateBoard inserts a new board with a generated slug. The slug column
// carries a unique index; on collision the slug is regenerated, up to
// slugAttempts tries.
func (r *MongoBoardRepository) CreateBoard(ctx context.Context, board *models.Board) error {
	if board.Title == "" {
		return apperrors.SchemaValidation
	}

	board.ID = primitive.NewObjectID()
	if board.Description == "" {
		board.Description = models.DefaultBoardDescription
	}
	if board.Color == "" {
		board.Color = slug.BoardColor()
	}
	board.CreatedAt = time.Now()
	board.ModifiedAt = time.Now()

	for attempt := 0; attempt < slugAttempts; attempt++ {
		board.Slug = slug.Generate()
		_, err := r.collection.InsertOne(ctx, board)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return err
		}
	}
	return apperrors.SchemaValidation
}

// GetBoardBySlug retrieves one board by slug, scoped to the owner
func (r *MongoBoardRepository) GetBoardBySlug(ctx context.Context, s string, owner primitive.ObjectID) (*models.Board, error) {
	return r.findOne(ctx, bson.M{"slug": s, "added_by": owner})
}

// GetBoardByTitle retrieves one board by title, scoped to the owner. Used by
// the bookmark importer to resolve folder names.
func (r *MongoBoardRepository) GetBoardByTitle(ctx context.Context, title string, owner primitive.ObjectID) (*models.Board, error) {
	return r.findOne(ctx, bson.M{"title": title, "added_by": owner})
}

func (r *MongoBoardRepository) findOne(ctx context.Context, filter bson.M) (*models.Board, error) {
	var board models.Board
	err := r.collection.FindOne(ctx, filter).Decode(&board)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ItemNotExists
		}
		return nil, err
	}
	return &board, nil
}

// GetBoardsByOwner retrieves all boards created by one user
func (r *MongoBoardRepository) GetBoardsByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Board, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"added_by": owner}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var boards []models.Board
	if err = cursor.All(ctx, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// UpdateBoardByID merges the supplied fields into the board, scoped to the
// owner. The lookup key here is the raw document id, not the slug.
func (r *MongoBoardRepository) UpdateBoardByID(ctx context.Context, id, owner primitive.ObjectID, set bson.M) error {
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

// DeleteBoardBySlug deletes one board by slug, scoped to the owner, and
// returns the deleted document so callers can clean up references.
func (r *MongoBoardRepository) DeleteBoardBySlug(ctx context.Context, s string, owner primitive.ObjectID) (*models.Board, error) {
	var board models.Board
	err := r.collection.FindOneAndDelete(ctx, bson.M{"slug": s, "added_by": owner}).Decode(&board)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ItemNotExists
		}
		return nil, err
	}
	return &board, nil
}
