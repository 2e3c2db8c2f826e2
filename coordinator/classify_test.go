package coordinator

import (
	"testing"

	"github.com/anywear/anywear-agent/models"
)

func TestClassifySlot(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        models.Slot
	}{
		{"jeans by title", "Slim Fit Jeans", "98% cotton", models.SlotBottom},
		{"skirt", "Pleated Skirt", "", models.SlotBottom},
		{"trousers uppercase", "WOOL TROUSERS", "", models.SlotBottom},
		{"keyword in description only", "Summer Essential", "lightweight jogger cut", models.SlotBottom},
		{"shirt", "Oxford Shirt", "100% cotton, regular fit", models.SlotTop},
		{"dress defaults to top", "Floral Midi Dress", "viscose", models.SlotTop},
		{"empty text", "", "", models.SlotTop},
		// "denim" matches even though the item is a jacket. Accepted
		// false positive of keyword classification.
		{"denim jacket", "Classic Jacket", "washed denim jacket with brass buttons", models.SlotBottom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySlot(tt.title, tt.description); got != tt.want {
				t.Errorf("ClassifySlot(%q, %q) = %v, want %v", tt.title, tt.description, got, tt.want)
			}
		})
	}
}
