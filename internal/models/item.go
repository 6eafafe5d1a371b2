package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item represents a single saved bookmark stored in MongoDB. An item always
// belongs to exactly one board and one adding user.
type Item struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title      string             `json:"title,omitempty" bson:"title,omitempty"`
	Source     string             `json:"source" bson:"source"`
	SourceURL  string             `json:"source_url,omitempty" bson:"source_url,omitempty"`
	Summary    string             `json:"summary,omitempty" bson:"summary,omitempty"`
	ItemType   string             `json:"item_type,omitempty" bson:"item_type,omitempty"`
	Content    string             `json:"content,omitempty" bson:"content,omitempty"`
	Slug       string             `json:"slug,omitempty" bson:"slug,omitempty"`
	Board      primitive.ObjectID `json:"board" bson:"board"`
	Keywords   []string           `json:"keywords,omitempty" bson:"keywords,omitempty"`
	Tags       []string           `json:"tags" bson:"tags"`
	AddedBy    primitive.ObjectID `json:"added_by" bson:"added_by"`
	LikedBy    []string           `json:"liked_by,omitempty" bson:"liked_by,omitempty"`
	LikeCount  int                `json:"like_count" bson:"like_count"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	ModifiedAt time.Time          `json:"modified_at" bson:"modified_at"`
}

// CreateItemRequest defines the request body for creating an item. Board is
// the slug of one of the caller's boards.
type CreateItemRequest struct {
	Title     string   `json:"title,omitempty"`
	Source    string   `json:"source" validate:"required"`
	SourceURL string   `json:"source_url,omitempty" validate:"omitempty,url"`
	Summary   string   `json:"summary,omitempty"`
	ItemType  string   `json:"item_type,omitempty"`
	Content   string   `json:"content,omitempty"`
	Board     string   `json:"board" validate:"required"`
	Keywords  []string `json:"keywords,omitempty"`
	Tags      []string `json:"tags"`
}

// UpdateItemRequest defines the request body for partially updating an item
type UpdateItemRequest struct {
	Title     string   `json:"title,omitempty"`
	Source    string   `json:"source,omitempty"`
	SourceURL string   `json:"source_url,omitempty" validate:"omitempty,url"`
	Summary   string   `json:"summary,omitempty"`
	ItemType  string   `json:"item_type,omitempty"`
	Content   string   `json:"content,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}
