package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/anywear/anywear-agent/utils"
)

// OpenPanelHandler services the open-panel message: it mints a surface
// identity and a session token the new surface uses to subscribe to events.
func (h *Handlers) OpenPanelHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	surfaceID := uuid.NewString()
	token, err := utils.GenerateSurfaceToken(surfaceID)
	if err != nil {
		utils.RespondError(w, nil, fmt.Sprintf("Failed to issue surface token: %v", err), http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"surface_id": surfaceID,
		"token":      token,
		"events_url": "/events",
		"state_url":  "/state",
	})
}
