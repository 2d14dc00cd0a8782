package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/buffet-strategist/internal/types"
)

// DefaultModel is the Gemini model used for dish detection.
const DefaultModel = "gemini-2.0-flash"

const detectPrompt = `List every distinct food or dish you see in this buffet image.
Return ONLY a valid JSON array, no markdown, no explanation:
[{"name":"...", "grams":100, "confidence":0.9}]
grams is the estimated visible portion weight (20-500), confidence is 0-1.`

// GeminiDetector detects dishes with the Gemini vision API.
type GeminiDetector struct {
	client *genai.Client
	model  string
}

// NewGeminiDetector creates a detector. An empty model name uses the default.
func NewGeminiDetector(ctx context.Context, apiKey, model string) (*GeminiDetector, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiDetector{client: client, model: model}, nil
}

// Close releases the underlying API client.
func (d *GeminiDetector) Close() error { return d.client.Close() }

// Detect sends the image and prompt to Gemini and parses the dish array out
// of the response.
func (d *GeminiDetector) Detect(ctx context.Context, image []byte) ([]types.Dish, error) {
	model := d.client.GenerativeModel(d.model)
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx,
		genai.ImageData("jpeg", image),
		genai.Text(detectPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini detection failed: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return nil, err
	}
	return parseDishes(text)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from model")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in model response")
	}
	return sb.String(), nil
}

type detectedItem struct {
	Name       string  `json:"name"`
	Grams      float64 `json:"grams"`
	Confidence float64 `json:"confidence"`
}

// parseDishes extracts the first JSON array from the model output; models
// occasionally wrap JSON in code fences or prose.
func parseDishes(text string) ([]types.Dish, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in model output")
	}

	var items []detectedItem
	if err := json.Unmarshal([]byte(text[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("failed to parse detected dishes: %w", err)
	}

	dishes := make([]types.Dish, 0, len(items))
	for _, item := range items {
		dishes = append(dishes, types.Dish{
			Name:           item.Name,
			EstimatedGrams: item.Grams,
			Confidence:     item.Confidence,
		})
	}
	return clampDishes(dishes), nil
}
