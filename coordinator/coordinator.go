package coordinator

import (
	"context"
	"fmt"

	"github.com/anywear/anywear-agent/extractor"
	"github.com/anywear/anywear-agent/models"
	"github.com/anywear/anywear-agent/store"
)

// Capture ack statuses.
const (
	StatusAdded     = "added"
	StatusDiscarded = "discarded"
)

// CaptureAck is the response to a capture message.
type CaptureAck struct {
	Status   string               `json:"status"`
	Slot     models.Slot          `json:"slot,omitempty"`
	Wardrobe models.WardrobeState `json:"wardrobe"`
}

// StateSummary answers a surface's check-wardrobe-state request.
type StateSummary struct {
	HasTop       bool `json:"has_top"`
	HasBottom    bool `json:"has_bottom"`
	CanVisualize bool `json:"can_visualize"`
}

// Coordinator is the sole writer of wardrobe state. Every mutation —
// capture, slot removal, reset — is serialized through one request channel
// and processed in arrival order, then persisted and broadcast. Surfaces
// read state from the store directly; they never write the wardrobe key.
type Coordinator struct {
	store    store.Store
	hub      *Hub
	tabs     *TabRegistry
	requests chan func(context.Context)
}

func New(st store.Store, hub *Hub, tabs *TabRegistry) *Coordinator {
	return &Coordinator{
		store:    st,
		hub:      hub,
		tabs:     tabs,
		requests: make(chan func(context.Context), 16),
	}
}

// Run processes requests until ctx is cancelled. Call in its own goroutine.
func (c *Coordinator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-c.requests:
			fn(ctx)
		}
	}
}

// do enqueues fn and waits for its result.
func (c *Coordinator) do(ctx context.Context, fn func(context.Context) error) error {
	done := make(chan error, 1)
	select {
	case c.requests <- func(runCtx context.Context) { done <- fn(runCtx) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Capture runs one capture lifecycle:
// received → page_check → classify → merge → persist → broadcast.
// A page_check failure terminates the lifecycle with no side effects. Store
// I/O failure aborts this run only.
func (c *Coordinator) Capture(ctx context.Context, tabID int, product models.ScrapedProduct) (CaptureAck, error) {
	var ack CaptureAck
	err := c.do(ctx, func(runCtx context.Context) error {
		url, ok := c.tabs.URL(tabID)
		if !ok || !extractor.IsProductPath(url) {
			// Stale or late message from a page the user has left.
			ack = CaptureAck{Status: StatusDiscarded}
			return nil
		}

		slot := ClassifySlot(product.Title, product.Description)

		var wardrobe models.WardrobeState
		if _, err := c.store.Get(runCtx, store.KeyWardrobe, &wardrobe); err != nil {
			return fmt.Errorf("read wardrobe: %w", err)
		}
		wardrobe.SetSlot(slot, &product)
		if err := c.store.Set(runCtx, store.KeyWardrobe, wardrobe); err != nil {
			return fmt.Errorf("persist wardrobe: %w", err)
		}

		c.hub.Broadcast(wardrobe)
		ack = CaptureAck{Status: StatusAdded, Slot: slot, Wardrobe: wardrobe}
		return nil
	})
	return ack, err
}

// RemoveSlot clears one wardrobe slot. Routed through the coordinator like
// any other wardrobe mutation so the single-writer invariant holds.
func (c *Coordinator) RemoveSlot(ctx context.Context, slot models.Slot) (models.WardrobeState, error) {
	var wardrobe models.WardrobeState
	err := c.do(ctx, func(runCtx context.Context) error {
		if _, err := c.store.Get(runCtx, store.KeyWardrobe, &wardrobe); err != nil {
			return fmt.Errorf("read wardrobe: %w", err)
		}
		wardrobe.SetSlot(slot, nil)
		if err := c.store.Set(runCtx, store.KeyWardrobe, wardrobe); err != nil {
			return fmt.Errorf("persist wardrobe: %w", err)
		}
		c.hub.Broadcast(wardrobe)
		return nil
	})
	return wardrobe, err
}

// Reset deletes the profile and the wardrobe together — they share a
// lifecycle, no profile means no valid wardrobe context — and broadcasts the
// now-empty wardrobe.
func (c *Coordinator) Reset(ctx context.Context) error {
	return c.do(ctx, func(runCtx context.Context) error {
		if err := c.store.Delete(runCtx, store.KeyUserProfile, store.KeyWardrobe, store.KeyProfileImage); err != nil {
			return fmt.Errorf("reset state: %w", err)
		}
		c.hub.Broadcast(models.WardrobeState{})
		return nil
	})
}

// CheckState reports slot occupancy and whether generation can run.
func (c *Coordinator) CheckState(ctx context.Context) (StateSummary, error) {
	var summary StateSummary
	err := c.do(ctx, func(runCtx context.Context) error {
		var wardrobe models.WardrobeState
		if _, err := c.store.Get(runCtx, store.KeyWardrobe, &wardrobe); err != nil {
			return fmt.Errorf("read wardrobe: %w", err)
		}
		var profile models.UserProfile
		hasProfile, err := c.store.Get(runCtx, store.KeyUserProfile, &profile)
		if err != nil {
			return fmt.Errorf("read profile: %w", err)
		}
		summary = StateSummary{
			HasTop:       wardrobe.Top != nil,
			HasBottom:    wardrobe.Bottom != nil,
			CanVisualize: hasProfile && !wardrobe.IsEmpty(),
		}
		return nil
	})
	return summary, err
}

// Tabs exposes the registry so the transport layer can feed navigation events.
func (c *Coordinator) Tabs() *TabRegistry { return c.tabs }

// Hub exposes the broadcast hub for surface subscriptions.
func (c *Coordinator) Hub() *Hub { return c.hub }
