package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/anywear/anywear-agent/models"
	"github.com/anywear/anywear-agent/utils"
)

// SaveOutfitRequest names and keeps a generation result.
type SaveOutfitRequest struct {
	Name        string                 `json:"name"`
	ResultImage string                 `json:"result_image"`
	Top         *models.ScrapedProduct `json:"top,omitempty"`
	Bottom      *models.ScrapedProduct `json:"bottom,omitempty"`
}

// OutfitHandler manages the saved-outfit list: GET lists, POST saves,
// DELETE ?id= removes. Saved outfits live independently of history and are
// never auto-evicted.
func (h *Handlers) OutfitHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		outfits, err := h.Closet.SavedOutfits(r.Context())
		if err != nil {
			utils.RespondError(w, nil, fmt.Sprintf("Failed to read saved outfits: %v", err), http.StatusInternalServerError)
			return
		}
		if outfits == nil {
			outfits = []models.SavedOutfit{}
		}
		utils.RespondJSON(w, http.StatusOK, outfits)

	case http.MethodPost:
		var req SaveOutfitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, nil, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.ResultImage == "" {
			utils.RespondError(w, nil, "name and result_image are required", http.StatusBadRequest)
			return
		}
		outfit := models.NewSavedOutfit(req.Name, req.ResultImage, req.Top, req.Bottom)
		if err := h.Closet.SaveOutfit(r.Context(), outfit); err != nil {
			utils.RespondError(w, nil, fmt.Sprintf("Failed to save outfit: %v", err), http.StatusInternalServerError)
			return
		}
		utils.RespondJSON(w, http.StatusOK, outfit)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			utils.RespondError(w, nil, "Please provide an 'id' query parameter", http.StatusBadRequest)
			return
		}
		if err := h.Closet.DeleteSavedOutfit(r.Context(), id); err != nil {
			utils.RespondError(w, nil, fmt.Sprintf("Failed to delete outfit: %v", err), http.StatusInternalServerError)
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// CollectionsHandler stores and returns the surface-owned collections list
// without interpreting it.
func (h *Handlers) CollectionsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		collections, err := h.Closet.Collections(r.Context())
		if err != nil {
			utils.RespondError(w, nil, fmt.Sprintf("Failed to read collections: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(collections)

	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil || !json.Valid(body) {
			utils.RespondError(w, nil, "Body must be a valid JSON document", http.StatusBadRequest)
			return
		}
		if err := h.Closet.SetCollections(r.Context(), body); err != nil {
			utils.RespondError(w, nil, fmt.Sprintf("Failed to save collections: %v", err), http.StatusInternalServerError)
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "saved"})

	default:
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
