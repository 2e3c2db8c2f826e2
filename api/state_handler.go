package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/anywear/anywear-agent/models"
	"github.com/anywear/anywear-agent/store"
	"github.com/anywear/anywear-agent/utils"
)

// StateResponse is the baseline snapshot a surface loads when it opens.
// Broadcasts only carry deltas; initial state always comes from this pull.
type StateResponse struct {
	Profile      *models.UserProfile   `json:"profile"`
	Wardrobe     models.WardrobeState  `json:"wardrobe"`
	History      []models.OutfitRecord `json:"history"`
	SavedOutfits []models.SavedOutfit  `json:"saved_outfits"`
	Collections  json.RawMessage       `json:"collections"`
}

// StateHandler performs the full read of all state keys.
func (h *Handlers) StateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	resp := StateResponse{}

	profile, err := h.Closet.Profile(ctx)
	if err != nil {
		utils.RespondError(w, nil, fmt.Sprintf("Failed to read profile: %v", err), http.StatusInternalServerError)
		return
	}
	resp.Profile = profile

	if _, err := h.Store.Get(ctx, store.KeyWardrobe, &resp.Wardrobe); err != nil {
		utils.RespondError(w, nil, fmt.Sprintf("Failed to read wardrobe: %v", err), http.StatusInternalServerError)
		return
	}

	if resp.History, err = h.Closet.History(ctx); err != nil {
		utils.RespondError(w, nil, fmt.Sprintf("Failed to read history: %v", err), http.StatusInternalServerError)
		return
	}
	if resp.SavedOutfits, err = h.Closet.SavedOutfits(ctx); err != nil {
		utils.RespondError(w, nil, fmt.Sprintf("Failed to read saved outfits: %v", err), http.StatusInternalServerError)
		return
	}
	if resp.Collections, err = h.Closet.Collections(ctx); err != nil {
		utils.RespondError(w, nil, fmt.Sprintf("Failed to read collections: %v", err), http.StatusInternalServerError)
		return
	}

	if resp.History == nil {
		resp.History = []models.OutfitRecord{}
	}
	if resp.SavedOutfits == nil {
		resp.SavedOutfits = []models.SavedOutfit{}
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}
