package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Token kinds recorded in the ledger.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenRecord is one ledger entry per issued token. Entries are written
// non-revoked at issuance and only ever mutated to flip Revoked; they are
// not expired out or deleted, so revocation checks always have an entry.
type TokenRecord struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	JTI          string             `json:"jti" bson:"jti"`
	TokenType    string             `json:"token_type" bson:"token_type"`
	UserIdentity string             `json:"user_identity" bson:"user_identity"`
	Revoked      bool               `json:"revoked" bson:"revoked"`
	Expires      time.Time          `json:"expires" bson:"expires"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	ModifiedAt   time.Time          `json:"modified_at" bson:"modified_at"`
}
