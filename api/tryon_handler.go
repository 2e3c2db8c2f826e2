package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	appConfig "github.com/anywear/anywear-agent/config"
	"github.com/anywear/anywear-agent/models"
	"github.com/anywear/anywear-agent/store"
	"github.com/anywear/anywear-agent/utils"
)

// TryOnHandler runs a generation: profile photo + current wardrobe through
// the try-on engine, with the result appended to history. Failures persist
// nothing.
func (h *Handlers) TryOnHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Virtual Try-On API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profile, err := h.Closet.Profile(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to read profile: %v", err), http.StatusInternalServerError)
		return
	}
	if profile == nil {
		utils.RespondError(w, &logMessageBuilder, "No profile uploaded", http.StatusBadRequest)
		return
	}

	var wardrobe models.WardrobeState
	if _, err := h.Store.Get(r.Context(), store.KeyWardrobe, &wardrobe); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to read wardrobe: %v", err), http.StatusInternalServerError)
		return
	}
	if wardrobe.IsEmpty() {
		utils.RespondError(w, &logMessageBuilder, "Wardrobe is empty, capture a product first", http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Generating (top=%v, bottom=%v)", wardrobe.Top != nil, wardrobe.Bottom != nil))

	// The generation round-trip is bounded: the page-side control has no
	// cancel path, so the deadline is the only way out of a stuck call.
	genCtx, cancel := context.WithTimeout(r.Context(), appConfig.GenerationTimeout)
	defer cancel()

	generated, err := utils.GenerateTryOn(genCtx, profile.ImageData, wardrobe.Top, wardrobe.Bottom)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Generation failed: %v", err))
		if strings.Contains(err.Error(), "429") || strings.Contains(strings.ToLower(err.Error()), "quota") {
			utils.RespondError(w, nil, "Quota exceeded. Please try again later.", http.StatusTooManyRequests)
		} else {
			utils.RespondError(w, nil, "Failed to generate outfit. Please try again.", http.StatusInternalServerError)
		}
		return
	}

	// Store the result: S3 object key when offloading is configured,
	// otherwise inline.
	resultRef := fmt.Sprintf("data:image/jpeg;base64,%s", base64.StdEncoding.EncodeToString(generated))
	resultURL := resultRef
	if utils.MediaOffloadEnabled() {
		objectKey := fmt.Sprintf("generated_images/outfit_%d.jpg", time.Now().UnixNano())
		if _, err := utils.UploadFileToS3(r.Context(), bytes.NewReader(generated), objectKey, "image/jpeg"); err != nil {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to upload generated image: %v", err), http.StatusInternalServerError)
			return
		}
		resultRef = objectKey
		if url, err := utils.GetPresignedURL(r.Context(), objectKey); err == nil {
			resultURL = url
		} else {
			resultURL = objectKey
		}
	}

	record := models.NewOutfitRecord(resultRef, profile.ImageData, wardrobe.Top, wardrobe.Bottom)
	if err := h.Closet.AppendHistory(r.Context(), record); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to save history: %v", err), http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Generation complete")
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"result": resultURL,
		"outfit": record,
	})
}
