package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/anywear/anywear-agent/models"
	"github.com/anywear/anywear-agent/utils"
)

// ProfileUploadRequest carries the encoded body photo.
type ProfileUploadRequest struct {
	ImageData string `json:"image_data"`
}

// ProfileHandler manages the user profile: read, upload (gated by the
// Gemini safety check), and reset. Reset clears the wardrobe too — the two
// share a lifecycle.
func (h *Handlers) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Profile API]")

	switch r.Method {
	case http.MethodGet:
		profile, err := h.Closet.Profile(r.Context())
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to read profile: %v", err), http.StatusInternalServerError)
			return
		}
		if profile == nil {
			utils.RespondError(w, &logMessageBuilder, "No profile uploaded", http.StatusNotFound)
			return
		}
		utils.RespondJSON(w, http.StatusOK, profile)

	case http.MethodPost:
		var req ProfileUploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageData == "" {
			utils.RespondError(w, &logMessageBuilder, "image_data is required", http.StatusBadRequest)
			return
		}

		result, err := utils.ValidateUserImage(r.Context(), req.ImageData)
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Validation failed: %v", err), http.StatusInternalServerError)
			return
		}
		if !result.IsValid {
			// Rejection leaves all state untouched.
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Profile rejected: %s", result.Reason))
			utils.RespondJSON(w, http.StatusUnprocessableEntity, result)
			return
		}

		profile := models.NewUserProfile(req.ImageData)
		if err := h.Closet.SetProfile(r.Context(), profile); err != nil {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to save profile: %v", err), http.StatusInternalServerError)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, "Profile saved")
		utils.RespondJSON(w, http.StatusOK, profile)

	case http.MethodDelete:
		if err := h.Coordinator.Reset(r.Context()); err != nil {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to reset: %v", err), http.StatusInternalServerError)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, "Profile and wardrobe reset")
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "reset"})

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
