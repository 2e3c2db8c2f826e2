package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/anywear/anywear-agent/models"
	"github.com/anywear/anywear-agent/utils"
)

// WardrobeStateHandler answers check-wardrobe-state requests from surfaces.
func (h *Handlers) WardrobeStateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary, err := h.Coordinator.CheckState(r.Context())
	if err != nil {
		utils.RespondError(w, nil, fmt.Sprintf("Failed to read state: %v", err), http.StatusInternalServerError)
		return
	}
	utils.RespondJSON(w, http.StatusOK, summary)
}

// RemoveSlotRequest names the slot to clear.
type RemoveSlotRequest struct {
	Slot models.Slot `json:"slot"`
}

// RemoveSlotHandler clears one wardrobe slot. Removal goes through the
// coordinator, never by a surface writing the wardrobe key itself.
func (h *Handlers) RemoveSlotHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RemoveSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, nil, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Slot != models.SlotTop && req.Slot != models.SlotBottom {
		utils.RespondError(w, nil, "slot must be 'top' or 'bottom'", http.StatusBadRequest)
		return
	}

	wardrobe, err := h.Coordinator.RemoveSlot(r.Context(), req.Slot)
	if err != nil {
		utils.RespondError(w, nil, fmt.Sprintf("Failed to remove item: %v", err), http.StatusInternalServerError)
		return
	}
	utils.RespondJSON(w, http.StatusOK, wardrobe)
}
