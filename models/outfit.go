package models

import (
	"time"

	"github.com/google/uuid"
)

// OutfitRecord is one past generation. History entries embed full product
// snapshots by value, so editing or recapturing a product later does not
// rewrite them.
type OutfitRecord struct {
	ID          string          `bson:"id" json:"id"`
	ResultImage string          `bson:"result_image" json:"result_image"` // storage key when offloaded, else inline base64
	Top         *ScrapedProduct `bson:"top,omitempty" json:"top,omitempty"`
	Bottom      *ScrapedProduct `bson:"bottom,omitempty" json:"bottom,omitempty"`
	UserImage   string          `bson:"user_image" json:"user_image"`
	Timestamp   time.Time       `bson:"timestamp" json:"timestamp"`
}

// NewOutfitRecord builds a history entry for a finished generation.
func NewOutfitRecord(resultImage, userImage string, top, bottom *ScrapedProduct) OutfitRecord {
	return OutfitRecord{
		ID:          uuid.NewString(),
		ResultImage: resultImage,
		Top:         top,
		Bottom:      bottom,
		UserImage:   userImage,
		Timestamp:   time.Now(),
	}
}

// SavedOutfit is a user-curated keepsake of a generation result. Its
// lifecycle is independent of history: explicit save, explicit delete,
// never auto-evicted.
type SavedOutfit struct {
	ID          string          `bson:"id" json:"id"`
	Name        string          `bson:"name" json:"name"`
	ResultImage string          `bson:"result_image" json:"result_image"`
	Top         *ScrapedProduct `bson:"top,omitempty" json:"top,omitempty"`
	Bottom      *ScrapedProduct `bson:"bottom,omitempty" json:"bottom,omitempty"`
	CreatedAt   time.Time       `bson:"created_at" json:"created_at"`
}

// NewSavedOutfit names and keeps a generation result.
func NewSavedOutfit(name, resultImage string, top, bottom *ScrapedProduct) SavedOutfit {
	return SavedOutfit{
		ID:          uuid.NewString(),
		Name:        name,
		ResultImage: resultImage,
		Top:         top,
		Bottom:      bottom,
		CreatedAt:   time.Now(),
	}
}
