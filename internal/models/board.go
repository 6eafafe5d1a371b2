package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Board represents a named collection of items stored in MongoDB. The slug
// is generated server-side and is the lookup key for most board reads.
type Board struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Symbol      string             `json:"symbol,omitempty" bson:"symbol,omitempty"`
	Description string             `json:"description" bson:"description"`
	Color       string             `json:"color,omitempty" bson:"color,omitempty"`
	Slug        string             `json:"slug" bson:"slug"`
	AddedBy     primitive.ObjectID `json:"added_by" bson:"added_by"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	ModifiedAt  time.Time          `json:"modified_at" bson:"modified_at"`
}

// DefaultBoardDescription is applied when a board is created without one.
const DefaultBoardDescription = "A board to hold everything and anything related to you"

// CreateBoardRequest defines the request body for creating a board
type CreateBoardRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=120"`
	Symbol      string `json:"symbol,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// UpdateBoardRequest defines the request body for partially updating a board
type UpdateBoardRequest struct {
	Title       string `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Symbol      string `json:"symbol,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// BoardView is a board decorated with listing fields
type BoardView struct {
	Board     `bson:",inline"`
	Username  string `json:"username"`
	TimeStamp string `json:"time_stamp"`
}
