package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account stored in MongoDB. Username and email carry
// unique indexes; the password field holds the bcrypt hash and is never
// serialized.
type User struct {
	ID         primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Username   string               `json:"username" bson:"username"`
	Email      string               `json:"email" bson:"email"`
	Password   string               `json:"-" bson:"password"`
	ImageURL   string               `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Verified   bool                 `json:"verified" bson:"verified"`
	IsActive   bool                 `json:"is_active" bson:"is_active"`
	Items      []primitive.ObjectID `json:"items,omitempty" bson:"items,omitempty"`
	Boards     []primitive.ObjectID `json:"boards,omitempty" bson:"boards,omitempty"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at"`
	ModifiedAt time.Time            `json:"modified_at" bson:"modified_at"`
}

// SignupRequest defines the request body for creating a new account
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the request body for password authentication
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
