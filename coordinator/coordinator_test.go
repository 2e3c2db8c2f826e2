package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/anywear/anywear-agent/models"
	"github.com/anywear/anywear-agent/store"
)

const productPageURL = "https://shop.example.com/p/slim-fit-jeans/12345"

func newTestCoordinator(t *testing.T) (*Coordinator, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	coord := New(st, NewHub(), NewTabRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go coord.Run(ctx)

	return coord, st
}

func product(title, description string) models.ScrapedProduct {
	return models.NewScrapedProduct(productPageURL, title, "https://img.example.com/main.jpg", description)
}

func readWardrobe(t *testing.T, st store.Store) models.WardrobeState {
	t.Helper()
	var w models.WardrobeState
	if _, err := st.Get(context.Background(), store.KeyWardrobe, &w); err != nil {
		t.Fatalf("read wardrobe: %v", err)
	}
	return w
}

func TestCaptureBottomPreservesTop(t *testing.T) {
	coord, st := newTestCoordinator(t)
	coord.Tabs().Navigate(1, productPageURL)

	shirt := product("Oxford Shirt", "100% cotton")
	if _, err := coord.Capture(context.Background(), 1, shirt); err != nil {
		t.Fatalf("capture shirt: %v", err)
	}

	jeans := product("Slim Fit Jeans", "98% cotton")
	ack, err := coord.Capture(context.Background(), 1, jeans)
	if err != nil {
		t.Fatalf("capture jeans: %v", err)
	}
	if ack.Status != StatusAdded || ack.Slot != models.SlotBottom {
		t.Fatalf("ack = %+v, want added/bottom", ack)
	}

	w := readWardrobe(t, st)
	if w.Bottom == nil || w.Bottom.ID != jeans.ID {
		t.Errorf("bottom slot = %+v, want jeans", w.Bottom)
	}
	if w.Top == nil || w.Top.ID != shirt.ID {
		t.Errorf("top slot = %+v, want shirt unchanged", w.Top)
	}
}

func TestCaptureTopPreservesBottom(t *testing.T) {
	coord, st := newTestCoordinator(t)
	coord.Tabs().Navigate(1, productPageURL)

	skirt := product("Pleated Skirt", "")
	if _, err := coord.Capture(context.Background(), 1, skirt); err != nil {
		t.Fatalf("capture skirt: %v", err)
	}

	blouse := product("Silk Blouse", "delicate wash")
	ack, err := coord.Capture(context.Background(), 1, blouse)
	if err != nil {
		t.Fatalf("capture blouse: %v", err)
	}
	if ack.Slot != models.SlotTop {
		t.Fatalf("slot = %v, want top", ack.Slot)
	}

	w := readWardrobe(t, st)
	if w.Top == nil || w.Top.ID != blouse.ID {
		t.Errorf("top slot = %+v, want blouse", w.Top)
	}
	if w.Bottom == nil || w.Bottom.ID != skirt.ID {
		t.Errorf("bottom slot = %+v, want skirt unchanged", w.Bottom)
	}
}

func TestCaptureSameSlotOverwrites(t *testing.T) {
	coord, st := newTestCoordinator(t)
	coord.Tabs().Navigate(1, productPageURL)

	first := product("Slim Fit Jeans", "")
	second := product("Wide Leg Trousers", "")
	coord.Capture(context.Background(), 1, first)
	coord.Capture(context.Background(), 1, second)

	w := readWardrobe(t, st)
	if w.Bottom == nil || w.Bottom.ID != second.ID {
		t.Errorf("bottom slot = %+v, want last capture to win", w.Bottom)
	}
}

func TestCaptureGatedOnLiveTabURL(t *testing.T) {
	coord, st := newTestCoordinator(t)

	// Subscribe before the capture so a broadcast would be observed.
	_, ch := coord.Hub().Subscribe()

	// The tab has navigated to a non-product page before the message lands.
	coord.Tabs().Navigate(1, "https://shop.example.com/checkout")

	ack, err := coord.Capture(context.Background(), 1, product("Slim Fit Jeans", ""))
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if ack.Status != StatusDiscarded {
		t.Fatalf("status = %q, want discarded", ack.Status)
	}

	if w := readWardrobe(t, st); !w.IsEmpty() {
		t.Errorf("wardrobe = %+v, want untouched", w)
	}
	select {
	case w := <-ch:
		t.Errorf("unexpected broadcast %+v for discarded capture", w)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCaptureFromUnknownTabDiscarded(t *testing.T) {
	coord, st := newTestCoordinator(t)

	ack, err := coord.Capture(context.Background(), 42, product("Slim Fit Jeans", ""))
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if ack.Status != StatusDiscarded {
		t.Fatalf("status = %q, want discarded", ack.Status)
	}
	if w := readWardrobe(t, st); !w.IsEmpty() {
		t.Errorf("wardrobe = %+v, want untouched", w)
	}
}

func TestCaptureBroadcastsFullWardrobe(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	coord.Tabs().Navigate(1, productPageURL)

	_, ch := coord.Hub().Subscribe()

	jeans := product("Slim Fit Jeans", "")
	if _, err := coord.Capture(context.Background(), 1, jeans); err != nil {
		t.Fatalf("capture: %v", err)
	}

	select {
	case w := <-ch:
		if w.Bottom == nil || w.Bottom.ID != jeans.ID {
			t.Errorf("broadcast wardrobe = %+v, want jeans in bottom", w)
		}
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}
}

func TestRemoveSlotThroughCoordinator(t *testing.T) {
	coord, st := newTestCoordinator(t)
	coord.Tabs().Navigate(1, productPageURL)

	coord.Capture(context.Background(), 1, product("Oxford Shirt", ""))
	coord.Capture(context.Background(), 1, product("Slim Fit Jeans", ""))

	_, ch := coord.Hub().Subscribe()

	w, err := coord.RemoveSlot(context.Background(), models.SlotTop)
	if err != nil {
		t.Fatalf("remove slot: %v", err)
	}
	if w.Top != nil {
		t.Errorf("top = %+v, want cleared", w.Top)
	}
	if w.Bottom == nil {
		t.Error("bottom cleared by removing top")
	}

	if stored := readWardrobe(t, st); stored.Top != nil {
		t.Errorf("stored top = %+v, want cleared", stored.Top)
	}

	select {
	case got := <-ch:
		if got.Top != nil {
			t.Errorf("broadcast after removal still has top: %+v", got.Top)
		}
	case <-time.After(time.Second):
		t.Fatal("removal was not broadcast")
	}
}

func TestResetClearsProfileAndWardrobe(t *testing.T) {
	coord, st := newTestCoordinator(t)
	coord.Tabs().Navigate(1, productPageURL)

	ctx := context.Background()
	if err := st.Set(ctx, store.KeyUserProfile, models.NewUserProfile("base64data")); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	coord.Capture(ctx, 1, product("Slim Fit Jeans", ""))

	if err := coord.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	var profile models.UserProfile
	if ok, _ := st.Get(ctx, store.KeyUserProfile, &profile); ok {
		t.Error("profile still present after reset")
	}
	if w := readWardrobe(t, st); !w.IsEmpty() {
		t.Errorf("wardrobe = %+v, want empty after reset", w)
	}
}

func TestCheckState(t *testing.T) {
	coord, st := newTestCoordinator(t)
	coord.Tabs().Navigate(1, productPageURL)
	ctx := context.Background()

	summary, err := coord.CheckState(ctx)
	if err != nil {
		t.Fatalf("check state: %v", err)
	}
	if summary.HasTop || summary.HasBottom || summary.CanVisualize {
		t.Errorf("empty state summary = %+v", summary)
	}

	coord.Capture(ctx, 1, product("Slim Fit Jeans", ""))
	summary, _ = coord.CheckState(ctx)
	if !summary.HasBottom || summary.HasTop {
		t.Errorf("summary = %+v, want bottom only", summary)
	}
	if summary.CanVisualize {
		t.Error("can_visualize true without a profile")
	}

	st.Set(ctx, store.KeyUserProfile, models.NewUserProfile("base64data"))
	summary, _ = coord.CheckState(ctx)
	if !summary.CanVisualize {
		t.Error("can_visualize false with profile and filled slot")
	}
}

func TestHubDropsWithoutSubscribers(t *testing.T) {
	coord, st := newTestCoordinator(t)
	coord.Tabs().Navigate(1, productPageURL)

	// No subscribers attached: the broadcast must be dropped silently and
	// the mutation must still persist.
	if _, err := coord.Capture(context.Background(), 1, product("Slim Fit Jeans", "")); err != nil {
		t.Fatalf("capture with no subscribers: %v", err)
	}
	if w := readWardrobe(t, st); w.Bottom == nil {
		t.Error("capture not persisted when no surface was listening")
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	id, ch := hub.Subscribe()
	if hub.Subscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", hub.Subscribers())
	}
	hub.Unsubscribe(id)
	if _, open := <-ch; open {
		t.Error("channel still open after unsubscribe")
	}
	if hub.Subscribers() != 0 {
		t.Errorf("subscribers = %d, want 0", hub.Subscribers())
	}
	// Unknown id is a no-op.
	hub.Unsubscribe(id)
}
