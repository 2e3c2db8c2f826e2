// Package closet manages the surface-owned entities: the user profile,
// the bounded outfit history and the saved-outfit list. Unlike wardrobe
// mutations these are written to the store directly and are not broadcast;
// a surface updates its own memory optimistically and other surfaces pick
// the change up on their next baseline read.
package closet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anywear/anywear-agent/models"
	"github.com/anywear/anywear-agent/store"
)

// HistoryLimit caps the outfit history. Appending beyond it evicts the
// oldest entries first.
const HistoryLimit = 50

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Profile returns the stored user profile, or nil when none is set.
func (s *Service) Profile(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	ok, err := s.store.Get(ctx, store.KeyUserProfile, &profile)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

// SetProfile replaces the profile wholesale and mirrors the raw image under
// the dashboard alias key.
func (s *Service) SetProfile(ctx context.Context, profile models.UserProfile) error {
	if err := s.store.Set(ctx, store.KeyUserProfile, profile); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}
	if err := s.store.Set(ctx, store.KeyProfileImage, profile.ImageData); err != nil {
		return fmt.Errorf("persist profile image alias: %w", err)
	}
	return nil
}

// History returns all history entries, oldest first.
func (s *Service) History(ctx context.Context) ([]models.OutfitRecord, error) {
	var history []models.OutfitRecord
	if _, err := s.store.Get(ctx, store.KeyHistory, &history); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return history, nil
}

// AppendHistory adds a generation record, evicting from the front once the
// list exceeds HistoryLimit.
func (s *Service) AppendHistory(ctx context.Context, rec models.OutfitRecord) error {
	history, err := s.History(ctx)
	if err != nil {
		return err
	}
	history = append(history, rec)
	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}
	if err := s.store.Set(ctx, store.KeyHistory, history); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// DeleteHistory removes the entry with the given id, if present.
func (s *Service) DeleteHistory(ctx context.Context, id string) error {
	history, err := s.History(ctx)
	if err != nil {
		return err
	}
	kept := history[:0]
	for _, rec := range history {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if err := s.store.Set(ctx, store.KeyHistory, kept); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// SavedOutfits returns the user-curated outfit list.
func (s *Service) SavedOutfits(ctx context.Context) ([]models.SavedOutfit, error) {
	var outfits []models.SavedOutfit
	if _, err := s.store.Get(ctx, store.KeySavedOutfits, &outfits); err != nil {
		return nil, fmt.Errorf("read saved outfits: %w", err)
	}
	return outfits, nil
}

// SaveOutfit appends a keepsake. Saved outfits are never auto-evicted.
func (s *Service) SaveOutfit(ctx context.Context, outfit models.SavedOutfit) error {
	outfits, err := s.SavedOutfits(ctx)
	if err != nil {
		return err
	}
	outfits = append(outfits, outfit)
	if err := s.store.Set(ctx, store.KeySavedOutfits, outfits); err != nil {
		return fmt.Errorf("persist saved outfits: %w", err)
	}
	return nil
}

// DeleteSavedOutfit removes a keepsake by id.
func (s *Service) DeleteSavedOutfit(ctx context.Context, id string) error {
	outfits, err := s.SavedOutfits(ctx)
	if err != nil {
		return err
	}
	kept := outfits[:0]
	for _, o := range outfits {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if err := s.store.Set(ctx, store.KeySavedOutfits, kept); err != nil {
		return fmt.Errorf("persist saved outfits: %w", err)
	}
	return nil
}

// Collections is an opaque list owned entirely by surfaces; the agent only
// stores and returns it.
func (s *Service) Collections(ctx context.Context) (json.RawMessage, error) {
	var collections json.RawMessage
	ok, err := s.store.Get(ctx, store.KeyCollections, &collections)
	if err != nil {
		return nil, fmt.Errorf("read collections: %w", err)
	}
	if !ok {
		return json.RawMessage("[]"), nil
	}
	return collections, nil
}

// SetCollections replaces the collections list.
func (s *Service) SetCollections(ctx context.Context, collections json.RawMessage) error {
	if err := s.store.Set(ctx, store.KeyCollections, collections); err != nil {
		return fmt.Errorf("persist collections: %w", err)
	}
	return nil
}
