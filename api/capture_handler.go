package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anywear/anywear-agent/extractor"
	"github.com/anywear/anywear-agent/extractor/base"
	"github.com/anywear/anywear-agent/models"
	"github.com/anywear/anywear-agent/utils"
)

// CaptureRequest is the capture-product message from a page context.
type CaptureRequest struct {
	TabID   int                   `json:"tab_id"`
	Product models.ScrapedProduct `json:"product"`
}

// CaptureHandler forwards an extracted product to the coordinator and
// returns its ack.
func (h *Handlers) CaptureHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Capture API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Product.Title == "" || req.Product.ImageURL == "" {
		utils.RespondError(w, &logMessageBuilder, "product title and image_url are required", http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Capture from tab %d: %s", req.TabID, req.Product.Title))

	ack, err := h.Coordinator.Capture(r.Context(), req.TabID, req.Product)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Capture failed: %v", err), http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Capture %s (slot=%s)", ack.Status, ack.Slot))
	utils.RespondJSON(w, http.StatusOK, ack)
}

// ExtractRequest asks the agent to extract a product from a URL on behalf of
// a page context.
type ExtractRequest struct {
	URL string `json:"url"`
}

// ExtractResponse reports the extraction outcome. A miss is not an error:
// the page-side control shows its failure state and nothing else happens.
type ExtractResponse struct {
	Found   bool                   `json:"found"`
	Product *models.ScrapedProduct `json:"product,omitempty"`
}

// ExtractHandler fetches the page and runs the extraction strategies.
func (h *Handlers) ExtractHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Extract API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		utils.RespondError(w, &logMessageBuilder, "Please provide a 'url' in the JSON body", http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Extracting URL: %s", req.URL))

	if !extractor.IsProductPath(req.URL) {
		utils.AddToLogMessage(&logMessageBuilder, "Not a product page path")
		utils.RespondJSON(w, http.StatusOK, ExtractResponse{Found: false})
		return
	}

	doc, err := h.Fetcher.FetchDocument(req.URL, base.ProductMarkupReady)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to fetch page: %v", err), http.StatusBadGateway)
		return
	}

	product, err := h.Extractor.Capture(doc, req.URL)
	if errors.Is(err, extractor.ErrNotFound) {
		utils.AddToLogMessage(&logMessageBuilder, "No product found")
		utils.RespondJSON(w, http.StatusOK, ExtractResponse{Found: false})
		return
	}
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Extraction failed: %v", err), http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Extracted: %s", product.Title))
	utils.RespondJSON(w, http.StatusOK, ExtractResponse{Found: true, Product: product})
}

// NavigateRequest reports a tab's navigation so the coordinator can gate
// late captures against the live URL.
type NavigateRequest struct {
	TabID  int    `json:"tab_id"`
	URL    string `json:"url"`
	Closed bool   `json:"closed,omitempty"`
}

// NavigateHandler updates the tab registry.
func (h *Handlers) NavigateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, nil, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.Closed {
		h.Coordinator.Tabs().Close(req.TabID)
	} else {
		h.Coordinator.Tabs().Navigate(req.TabID, req.URL)
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
