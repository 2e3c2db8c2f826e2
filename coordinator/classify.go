package coordinator

import (
	"strings"

	"github.com/anywear/anywear-agent/models"
)

// bottomKeywords classify a product into the bottom slot on a substring hit.
// Deliberately conservative: ambiguous and full-body items default to top.
var bottomKeywords = []string{
	"pant", "jean", "skirt", "trouser", "short",
	"legging", "sweatpant", "jogger", "denim",
}

// ClassifySlot maps a product's combined title and description to a wardrobe
// slot. Case-insensitive substring matching only; a "denim jacket" lands in
// the bottom slot because of "denim", an accepted false positive of the
// keyword approach.
func ClassifySlot(title, description string) models.Slot {
	text := strings.ToLower(title + " " + description)
	for _, kw := range bottomKeywords {
		if strings.Contains(text, kw) {
			return models.SlotBottom
		}
	}
	return models.SlotTop
}
