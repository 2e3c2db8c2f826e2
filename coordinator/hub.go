package coordinator

import (
	"sync"

	"github.com/anywear/anywear-agent/models"
)

const subscriberBuffer = 8

// Hub fans wardrobe-changed notifications out to live surfaces. Delivery is
// at most once: a notification to a full or absent subscriber is dropped,
// and surfaces recover by re-reading the store, never by replay.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan models.WardrobeState
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan models.WardrobeState)}
}

// Subscribe registers a surface and returns its notification channel.
func (h *Hub) Subscribe() (int, <-chan models.WardrobeState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	ch := make(chan models.WardrobeState, subscriberBuffer)
	h.subs[id] = ch
	return id, ch
}

// Unsubscribe detaches a surface. Safe to call for an unknown id.
func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Broadcast sends the full wardrobe to every subscriber without blocking.
func (h *Hub) Broadcast(w models.WardrobeState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- w:
		default:
		}
	}
}

// Subscribers reports the number of attached surfaces.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
