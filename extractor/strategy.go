package extractor

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/anywear/anywear-agent/models"
)

// ProductData is the raw extraction result before it is stamped into a
// models.ScrapedProduct.
type ProductData struct {
	Title       string
	Image       string
	Description string
}

// Strategy extracts product data from a parsed document. A nil result with a
// nil error means the strategy found nothing usable and the next one should
// be tried.
type Strategy interface {
	Name() string
	Extract(doc *goquery.Document, pageURL string) (*ProductData, error)
}

// Extractor runs the registered strategies in order and takes the first
// success. The structured-data pass is always tried before the DOM
// heuristics, so the flaky path only runs when the reliable one has nothing.
type Extractor struct {
	strategies []Strategy
}

func New() *Extractor {
	return &Extractor{
		strategies: []Strategy{
			&SchemaStrategy{},
			&HeuristicStrategy{},
		},
	}
}

// ErrNotFound is returned when no strategy yields a title+image pair.
var ErrNotFound = fmt.Errorf("no product found on page")

// Extract pulls product data from doc. Pages whose URL does not match a
// known product-page shape are rejected up front.
func (e *Extractor) Extract(doc *goquery.Document, pageURL string) (*ProductData, error) {
	if !IsProductPath(pageURL) {
		return nil, ErrNotFound
	}
	for _, s := range e.strategies {
		data, err := s.Extract(doc, pageURL)
		if err != nil {
			fmt.Printf("[Extractor] %s failed: %v\n", s.Name(), err)
			continue
		}
		if data != nil && data.Title != "" && data.Image != "" {
			return data, nil
		}
	}
	return nil, ErrNotFound
}

// Capture runs Extract and stamps the result into an immutable product record.
func (e *Extractor) Capture(doc *goquery.Document, pageURL string) (*models.ScrapedProduct, error) {
	data, err := e.Extract(doc, pageURL)
	if err != nil {
		return nil, err
	}
	product := models.NewScrapedProduct(pageURL, data.Title, data.Image, data.Description)
	return &product, nil
}
