package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the body photo used as the generation canvas. Created on
// first upload, replaced wholesale on re-upload, deleted on reset.
type UserProfile struct {
	ID        string    `bson:"id" json:"id"`
	ImageData string    `bson:"image_data" json:"image_data"` // base64-encoded image
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NewUserProfile wraps an uploaded image in a fresh profile record.
func NewUserProfile(imageData string) UserProfile {
	return UserProfile{
		ID:        uuid.NewString(),
		ImageData: imageData,
		UpdatedAt: time.Now(),
	}
}
