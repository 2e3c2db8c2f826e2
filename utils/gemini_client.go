package utils

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/anywear/anywear-agent/config"
	"github.com/anywear/anywear-agent/models"
)

const geminiModel = "gemini-3-flash"

// ValidationResult is the safety/quality verdict on an uploaded profile photo.
type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Reason  string `json:"reason,omitempty"`
}

var rejectedByDefault = &ValidationResult{
	IsValid: false,
	Reason:  "Could not verify image safety. Please try again.",
}

// ValidateUserImage runs the profile photo through the Gemini safety and
// quality gate. Any API or parse failure defaults to rejection — an upload
// is only accepted on an explicit pass.
func ValidateUserImage(ctx context.Context, imageData string) (*ValidationResult, error) {
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	imgBytes, err := DecodeImageData(imageData)
	if err != nil {
		return nil, fmt.Errorf("decode profile image: %w", err)
	}

	prompt := `Analyze this image for a virtual try-on application profile.

Strict Safety & Quality Rules:
1. Is it a real photo of a human? (No cartoons, no objects).
2. Is the person appropriately covered? (No explicit nudity).
3. Is the body visible from at least knees up? (Full body preferred).
4. Is the content safe, legal, and appropriate for general audiences? (No violence, hate symbols, gore, or illegal acts).

Return a JSON object: { "isValid": boolean, "reason": "string explaining why if invalid, or 'OK' if valid" }`

	model := client.GenerativeModel(geminiModel)
	resp, err := model.GenerateContent(ctx,
		genai.ImageData("jpeg", imgBytes),
		genai.Text(prompt),
	)
	if err != nil {
		fmt.Printf("[Gemini] validation call failed: %v\n", err)
		return rejectedByDefault, nil
	}

	text := firstText(resp)
	if text == "" {
		return rejectedByDefault, nil
	}

	// The model wraps its JSON in markdown fences more often than not.
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	var result ValidationResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		fmt.Printf("[Gemini] validation response not parseable: %v\n", err)
		return rejectedByDefault, nil
	}
	return &result, nil
}

// GenerateTryOn composites the wardrobe garments onto the user photo. The
// garment images are the ground truth; descriptions only inform fabric
// behavior. Returns the raw generated image bytes.
func GenerateTryOn(ctx context.Context, userImageData string, top, bottom *models.ScrapedProduct) ([]byte, error) {
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	userBytes, err := DecodeImageData(userImageData)
	if err != nil {
		return nil, fmt.Errorf("decode user image: %w", err)
	}

	parts := []genai.Part{genai.ImageData("jpeg", userBytes)}

	var descriptionText strings.Builder
	if top != nil {
		if imgData, err := fetchImage(top.ImageURL); err == nil {
			parts = append(parts, genai.ImageData("jpeg", imgData))
			descriptionText.WriteString(fmt.Sprintf("\nTop Details: %s", top.Description))
		} else {
			fmt.Printf("[Gemini] failed to load top image: %v\n", err)
			descriptionText.WriteString(fmt.Sprintf("\nTop Details: %s (Image load failed, use description)", top.Title))
		}
	}
	if bottom != nil {
		if imgData, err := fetchImage(bottom.ImageURL); err == nil {
			parts = append(parts, genai.ImageData("jpeg", imgData))
			descriptionText.WriteString(fmt.Sprintf("\nBottom Details: %s", bottom.Description))
		} else {
			fmt.Printf("[Gemini] failed to load bottom image: %v\n", err)
			descriptionText.WriteString(fmt.Sprintf("\nBottom Details: %s (Image load failed, use description)", bottom.Title))
		}
	}

	systemPrompt := fmt.Sprintf(`
System Instruction: You are a high-fidelity Virtual Try-On engine. Your goal is to composite specific clothing items onto a specific user photo while preserving the rest of the image.

Strict Constraints:
- Ground Truth: The provided clothing images are the absolute truth for texture, pattern, logos, and color. Do NOT generate a "similar" shirt. You must wrap the actual pixels of the source clothing image onto the user's body.
- Partial Try-On: If only a Top is provided, you MUST strictly preserve the user's original pants/skirt. If only a Bottom is provided, you MUST strictly preserve the user's original shirt/top. Do NOT change items that are not provided.
- Body Preservation: Do NOT alter the user's face, body shape, skin tone, or background. Only the area covered by the NEW clothing should be modified (inpainting).
- Fabric Physics: Use the description text below only to understand how the fabric behaves. Do not let the text override the visual design of the clothing images.

Task: Generate a photorealistic image of the user [User_Image_Reference] wearing the clothing items provided.

%s

Pose: Maintain original user pose exactly.
Lighting: Match the clothing lighting to the user's environment.
`, descriptionText.String())

	parts = append(parts, genai.Text(systemPrompt))

	model := client.GenerativeModel(geminiModel)
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok {
			return blob.Data, nil
		}
	}
	return nil, fmt.Errorf("no image generated")
}

// DecodeImageData turns a stored image string (raw base64 or a
// data:image/...;base64, URL) into bytes.
func DecodeImageData(imageData string) ([]byte, error) {
	if idx := strings.Index(imageData, ","); idx != -1 && strings.HasPrefix(imageData, "data:") {
		imageData = imageData[idx+1:]
	}
	return base64.StdEncoding.DecodeString(imageData)
}

func firstText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text)
		}
	}
	return ""
}

func fetchImage(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image, status: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
