package closet

import (
	"context"
	"fmt"
	"testing"

	"github.com/anywear/anywear-agent/models"
	"github.com/anywear/anywear-agent/store"
)

func newService() *Service {
	return NewService(store.NewMemoryStore())
}

func TestHistoryCapEvictsOldestFirst(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	var ids []string
	for i := 0; i < HistoryLimit+1; i++ {
		rec := models.NewOutfitRecord(fmt.Sprintf("result-%d", i), "user", nil, nil)
		ids = append(ids, rec.ID)
		if err := svc.AppendHistory(ctx, rec); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if len(history) != HistoryLimit {
		t.Fatalf("len(history) = %d, want %d", len(history), HistoryLimit)
	}
	if history[0].ID != ids[1] {
		t.Errorf("oldest entry = %s, want %s (first entry evicted)", history[0].ID, ids[1])
	}
	if history[len(history)-1].ID != ids[len(ids)-1] {
		t.Errorf("newest entry = %s, want %s", history[len(history)-1].ID, ids[len(ids)-1])
	}
}

func TestDeleteHistoryByID(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	first := models.NewOutfitRecord("a", "user", nil, nil)
	second := models.NewOutfitRecord("b", "user", nil, nil)
	svc.AppendHistory(ctx, first)
	svc.AppendHistory(ctx, second)

	if err := svc.DeleteHistory(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	history, _ := svc.History(ctx)
	if len(history) != 1 || history[0].ID != second.ID {
		t.Errorf("history after delete = %+v, want only %s", history, second.ID)
	}
}

func TestSaveThenDeleteOutfitRoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	keeper := models.NewSavedOutfit("keeper", "img-1", nil, nil)
	if err := svc.SaveOutfit(ctx, keeper); err != nil {
		t.Fatalf("save keeper: %v", err)
	}

	before, err := svc.SavedOutfits(ctx)
	if err != nil {
		t.Fatalf("read saved outfits: %v", err)
	}

	temp := models.NewSavedOutfit("temporary", "img-2", nil, nil)
	if err := svc.SaveOutfit(ctx, temp); err != nil {
		t.Fatalf("save temp: %v", err)
	}
	if err := svc.DeleteSavedOutfit(ctx, temp.ID); err != nil {
		t.Fatalf("delete temp: %v", err)
	}

	after, err := svc.SavedOutfits(ctx)
	if err != nil {
		t.Fatalf("read saved outfits: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("len = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i].ID != before[i].ID {
			t.Errorf("outfit %d = %s, want %s", i, after[i].ID, before[i].ID)
		}
	}
}

func TestProfileReplacedWholesale(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if p, err := svc.Profile(ctx); err != nil || p != nil {
		t.Fatalf("Profile() = %v, %v; want nil, nil before upload", p, err)
	}

	first := models.NewUserProfile("first-image")
	svc.SetProfile(ctx, first)
	second := models.NewUserProfile("second-image")
	svc.SetProfile(ctx, second)

	p, err := svc.Profile(ctx)
	if err != nil {
		t.Fatalf("read profile: %v", err)
	}
	if p.ID != second.ID || p.ImageData != "second-image" {
		t.Errorf("profile = %+v, want re-upload to replace wholesale", p)
	}
}

func TestCollectionsOpaqueRoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	empty, err := svc.Collections(ctx)
	if err != nil {
		t.Fatalf("read collections: %v", err)
	}
	if string(empty) != "[]" {
		t.Errorf("default collections = %s, want []", empty)
	}

	payload := []byte(`[{"name":"summer","outfit_ids":["a","b"]}]`)
	if err := svc.SetCollections(ctx, payload); err != nil {
		t.Fatalf("set collections: %v", err)
	}
	got, _ := svc.Collections(ctx)
	if string(got) != string(payload) {
		t.Errorf("collections = %s, want %s", got, payload)
	}
}
