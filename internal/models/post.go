package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents an image post stored in MongoDB
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"user_id" bson:"user_id"` // ID of the author (PostgreSQL user)
	Title     string             `json:"title" bson:"title"`
	ImageRef  string             `json:"image_ref,omitempty" bson:"image_ref,omitempty"` // opaque storage reference
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title    string   `json:"title" validate:"required,min=1,max=280"`
	ImageRef string   `json:"image_ref,omitempty"`
	Tags     []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title    string `json:"title,omitempty" validate:"omitempty,min=1,max=280"`
	ImageRef string `json:"image_ref,omitempty"`
}

// ReplacePostTagsRequest defines the request body for replacing a post's tags
type ReplacePostTagsRequest struct {
	Tags []string `json:"tags" validate:"required,dive,min=1,max=50"`
}
