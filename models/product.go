package models

import (
	"time"

	"github.com/google/uuid"
)

// ScrapedProduct represents one captured item. Products are immutable once
// created; a later capture of the same page mints a new product instead of
// mutating the old one.
type ScrapedProduct struct {
	ID          string    `bson:"id" json:"id"`
	URL         string    `bson:"url" json:"url"`
	Title       string    `bson:"title" json:"title"`
	ImageURL    string    `bson:"image_url" json:"image_url"`
	Description string    `bson:"description" json:"description"` // fabric, fit, material text pulled from the page
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
}

// NewScrapedProduct stamps a freshly extracted product with an ID and capture time.
func NewScrapedProduct(url, title, imageURL, description string) ScrapedProduct {
	return ScrapedProduct{
		ID:          uuid.NewString(),
		URL:         url,
		Title:       title,
		ImageURL:    imageURL,
		Description: description,
		Timestamp:   time.Now(),
	}
}
