package extractor

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SchemaStrategy reads embedded ld+json structured data blocks. When a block
// declares a Product with a non-empty name and image, its fields map 1:1
// onto the extraction result.
type SchemaStrategy struct{}

func (s *SchemaStrategy) Name() string { return "schema" }

func (s *SchemaStrategy) Extract(doc *goquery.Document, pageURL string) (*ProductData, error) {
	var found *ProductData

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			// Malformed blocks are common in the wild; skip them.
			return true
		}
		if getString(data, "@type") != "Product" {
			return true
		}

		title := getString(data, "name")
		image := schemaImage(data["image"])
		if title == "" || image == "" {
			return true
		}

		found = &ProductData{
			Title:       title,
			Image:       image,
			Description: getString(data, "description"),
		}
		return false
	})

	return found, nil
}

// schemaImage handles the two shapes schema.org allows: a bare URL string or
// an array of them.
func schemaImage(v interface{}) string {
	switch img := v.(type) {
	case string:
		return strings.TrimSpace(img)
	case []interface{}:
		for _, item := range img {
			if s, ok := item.(string); ok && s != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
