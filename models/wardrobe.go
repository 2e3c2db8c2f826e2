package models

// Slot is one of the two wardrobe positions.
type Slot string

const (
	SlotTop    Slot = "top"
	SlotBottom Slot = "bottom"
)

// WardrobeState is the current mix-and-match selection. At most one item per
// slot; a new capture classified into an occupied slot overwrites it.
type WardrobeState struct {
	Top    *ScrapedProduct `bson:"top,omitempty" json:"top,omitempty"`
	Bottom *ScrapedProduct `bson:"bottom,omitempty" json:"bottom,omitempty"`
}

// Item returns the occupant of the given slot, or nil.
func (w WardrobeState) Item(slot Slot) *ScrapedProduct {
	if slot == SlotBottom {
		return w.Bottom
	}
	return w.Top
}

// SetSlot replaces the occupant of the given slot.
func (w *WardrobeState) SetSlot(slot Slot, p *ScrapedProduct) {
	if slot == SlotBottom {
		w.Bottom = p
		return
	}
	w.Top = p
}

// IsEmpty reports whether neither slot is filled.
func (w WardrobeState) IsEmpty() bool {
	return w.Top == nil && w.Bottom == nil
}
