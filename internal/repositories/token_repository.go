package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shelvit/backend/internal/apperrors"
	"github.com/shelvit/backend/internal/models"
)

// TokenRepository defines the interface for the token ledger. Every issued
// token is recorded here non-revoked; entries are flipped to revoked on
// logout and otherwise kept forever. A jti the ledger has never seen is an
// error condition, not "not revoked".
type TokenRepository interface {
	Record(ctx context.Context, rec *models.TokenRecord) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti, identity string) error
	Remove(ctx context.Context, jti string) error
}

// MongoTokenRepository implements TokenRepository for MongoDB
type MongoTokenRepository struct {
	collection *mongo.Collection
}

// NewMongoTokenRepository creates a new MongoTokenRepository
func NewMongoTokenRepository(db *mongo.Database) *MongoTokenRepository {
	return &MongoTokenRepository{collection: db.Collection("tokens")}
}

// Record inserts a new non-revoked ledger entry
func (r *MongoTokenRepository) Record(ctx context.Context, rec *models.TokenRecord) error {
	if rec.JTI == "" || rec.TokenType == "" || rec.UserIdentity == "" {
		return apperrors.SchemaValidation
	}

	rec.ID = primitive.NewObjectID()
	rec.Revoked = false
	rec.CreatedAt = time.Now()
	rec.ModifiedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ItemAlreadyExists
	}
	return err
}

// IsRevoked returns the revoked flag for the entry matching jti
func (r *MongoTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var rec models.TokenRecord
	err := r.collection.FindOne(ctx, bson.M{"jti": jti}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, apperrors.TokenNotFound
		}
		return false, err
	}
	return rec.Revoked, nil
}

// Revoke flips the entry matching (jti, identity) to revoked
func (r *MongoTokenRepository) Revoke(ctx context.Context, jti, identity string) error {
	update := bson.M{"$set": bson.M{"revoked": true, "modified_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"jti": jti, "user_identity": identity}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.TokenNotFound
	}
	return nil
}

// Remove deletes the entry matching jti. Only used as the compensating
// action when recording the second half of a token pair fails.
func (r *MongoTokenRepository) Remove(ctx context.Context, jti string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"jti": jti})
	return err
}
