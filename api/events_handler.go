package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/anywear/anywear-agent/utils"
)

// EventsHandler streams wardrobe-changed notifications to a surface over
// server-sent events. Delivery is at most once; a surface that misses events
// (or connects late) reconciles by re-reading /state.
func (h *Handlers) EventsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	surfaceID, err := utils.ValidateSurfaceToken(token)
	if err != nil {
		utils.RespondError(w, nil, "Invalid or missing surface token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, nil, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	id, ch := h.Coordinator.Hub().Subscribe()
	defer h.Coordinator.Hub().Unsubscribe(id)

	fmt.Printf("[Events] surface %s attached (subscriber %d)\n", surfaceID, id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			fmt.Printf("[Events] surface %s detached\n", surfaceID)
			return
		case wardrobe, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(wardrobe)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: wardrobe-changed\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
