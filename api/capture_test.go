package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anywear/anywear-agent/closet"
	"github.com/anywear/anywear-agent/coordinator"
	"github.com/anywear/anywear-agent/models"
	"github.com/anywear/anywear-agent/store"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	st := store.NewMemoryStore()
	coord := coordinator.New(st, coordinator.NewHub(), coordinator.NewTabRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go coord.Run(ctx)

	return NewHandlers(coord, closet.NewService(st), st)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCaptureFlowOverHTTP(t *testing.T) {
	h := newTestHandlers(t)

	// The page reports its navigation before capturing.
	rec := postJSON(t, h.NavigateHandler, "/tabs/navigate", NavigateRequest{
		TabID: 7,
		URL:   "https://shop.example.com/p/slim-fit-jeans",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("navigate status = %d: %s", rec.Code, rec.Body)
	}

	jeans := models.NewScrapedProduct("https://shop.example.com/p/slim-fit-jeans",
		"Slim Fit Jeans", "https://img.example.com/jeans.jpg", "98% cotton")
	rec = postJSON(t, h.CaptureHandler, "/capture", CaptureRequest{TabID: 7, Product: jeans})
	if rec.Code != http.StatusOK {
		t.Fatalf("capture status = %d: %s", rec.Code, rec.Body)
	}

	var ack coordinator.CaptureAck
	if err := json.Unmarshal(rec.Body.Bytes(), &ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if ack.Status != coordinator.StatusAdded || ack.Slot != models.SlotBottom {
		t.Fatalf("ack = %+v, want added/bottom", ack)
	}
	if ack.Wardrobe.Bottom == nil || ack.Wardrobe.Bottom.ID != jeans.ID {
		t.Errorf("ack wardrobe = %+v, want jeans in bottom", ack.Wardrobe)
	}

	// The state summary reflects the capture.
	req := httptest.NewRequest(http.MethodGet, "/wardrobe/state", nil)
	stateRec := httptest.NewRecorder()
	h.WardrobeStateHandler(stateRec, req)
	if stateRec.Code != http.StatusOK {
		t.Fatalf("state status = %d: %s", stateRec.Code, stateRec.Body)
	}
	var summary coordinator.StateSummary
	json.Unmarshal(stateRec.Body.Bytes(), &summary)
	if !summary.HasBottom || summary.HasTop {
		t.Errorf("summary = %+v, want bottom only", summary)
	}

	// Remove the slot again.
	rec = postJSON(t, h.RemoveSlotHandler, "/wardrobe/remove", RemoveSlotRequest{Slot: models.SlotBottom})
	if rec.Code != http.StatusOK {
		t.Fatalf("remove status = %d: %s", rec.Code, rec.Body)
	}
	var wardrobe models.WardrobeState
	json.Unmarshal(rec.Body.Bytes(), &wardrobe)
	if !wardrobe.IsEmpty() {
		t.Errorf("wardrobe after removal = %+v, want empty", wardrobe)
	}
}

func TestCaptureDiscardedWhenTabLeftProductPage(t *testing.T) {
	h := newTestHandlers(t)

	postJSON(t, h.NavigateHandler, "/tabs/navigate", NavigateRequest{
		TabID: 7,
		URL:   "https://shop.example.com/cart",
	})

	jeans := models.NewScrapedProduct("https://shop.example.com/p/slim-fit-jeans",
		"Slim Fit Jeans", "https://img.example.com/jeans.jpg", "")
	rec := postJSON(t, h.CaptureHandler, "/capture", CaptureRequest{TabID: 7, Product: jeans})
	if rec.Code != http.StatusOK {
		t.Fatalf("capture status = %d: %s", rec.Code, rec.Body)
	}
	var ack coordinator.CaptureAck
	json.Unmarshal(rec.Body.Bytes(), &ack)
	if ack.Status != coordinator.StatusDiscarded {
		t.Errorf("status = %q, want discarded", ack.Status)
	}
}

func TestCaptureRejectsIncompleteProduct(t *testing.T) {
	h := newTestHandlers(t)

	rec := postJSON(t, h.CaptureHandler, "/capture", CaptureRequest{
		TabID:   7,
		Product: models.ScrapedProduct{Title: "No Image Shirt"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing image_url", rec.Code)
	}
}

func TestRemoveSlotRejectsUnknownSlot(t *testing.T) {
	h := newTestHandlers(t)

	rec := postJSON(t, h.RemoveSlotHandler, "/wardrobe/remove", map[string]string{"slot": "hat"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown slot", rec.Code)
	}
}

func TestNavigateClosesTab(t *testing.T) {
	h := newTestHandlers(t)

	postJSON(t, h.NavigateHandler, "/tabs/navigate", NavigateRequest{
		TabID: 3,
		URL:   "https://shop.example.com/p/skirt",
	})
	postJSON(t, h.NavigateHandler, "/tabs/navigate", NavigateRequest{TabID: 3, Closed: true})

	// Captures from the closed tab are discarded.
	skirt := models.NewScrapedProduct("https://shop.example.com/p/skirt",
		"Pleated Skirt", "https://img.example.com/skirt.jpg", "")
	rec := postJSON(t, h.CaptureHandler, "/capture", CaptureRequest{TabID: 3, Product: skirt})
	var ack coordinator.CaptureAck
	json.Unmarshal(rec.Body.Bytes(), &ack)
	if ack.Status != coordinator.StatusDiscarded {
		t.Errorf("status = %q, want discarded after tab close", ack.Status)
	}
}
