package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/anywear/anywear-agent/models"
	"github.com/anywear/anywear-agent/utils"
)

// HistoryResponse pages through past generations, latest first.
type HistoryResponse struct {
	Outfits     []models.OutfitRecord `json:"outfits"`
	Total       int                   `json:"total"`
	CurrentPage int                   `json:"current_page"`
	TotalPages  int                   `json:"total_pages"`
}

// HistoryHandler lists (GET) or deletes from (DELETE ?id=) the outfit
// history. Deletions are a surface-owned store write: they are not
// broadcast to other surfaces.
func (h *Handlers) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listHistory(w, r)
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			utils.RespondError(w, nil, "Please provide an 'id' query parameter", http.StatusBadRequest)
			return
		}
		if err := h.Closet.DeleteHistory(r.Context(), id); err != nil {
			utils.RespondError(w, nil, fmt.Sprintf("Failed to delete history entry: %v", err), http.StatusInternalServerError)
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handlers) listHistory(w http.ResponseWriter, r *http.Request) {
	page := 1
	limit := 10
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}

	history, err := h.Closet.History(r.Context())
	if err != nil {
		utils.RespondError(w, nil, fmt.Sprintf("Failed to read history: %v", err), http.StatusInternalServerError)
		return
	}

	// Stored oldest first; show latest first.
	reversed := make([]models.OutfitRecord, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		reversed = append(reversed, history[i])
	}

	total := len(reversed)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pageItems := reversed[start:end]

	// Presign offloaded result images for the response; inline data URLs
	// pass through untouched.
	if utils.MediaOffloadEnabled() {
		for i := range pageItems {
			if strings.HasPrefix(pageItems[i].ResultImage, "data:") {
				continue
			}
			if url, err := utils.GetPresignedURL(r.Context(), pageItems[i].ResultImage); err == nil {
				pageItems[i].ResultImage = url
			}
		}
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	utils.RespondJSON(w, http.StatusOK, HistoryResponse{
		Outfits:     pageItems,
		Total:       total,
		CurrentPage: page,
		TotalPages:  totalPages,
	})
}
