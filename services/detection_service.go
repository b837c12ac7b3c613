package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"ecotaste-backend/models"
)

// Detection failure taxonomy. Each maps to a distinct user-facing message;
// none is retried automatically, the user re-initiates the scan.
var (
	ErrRateLimited    = errors.New("rate limit exceeded, please try again in a moment")
	ErrQuotaExceeded  = errors.New("AI usage limit reached, please try again later")
	ErrNoFoodDetected = errors.New("no food items detected in the image")
)

// DetectedFood is one candidate food item returned by the vision model.
type DetectedFood struct {
	Name            string              `json:"name"`
	Category        models.FoodCategory `json:"category"`
	CarbonFootprint float64             `json:"carbonFootprint"`
	IsPlantBased    bool                `json:"isPlantBased"`
}

// FoodDetector identifies the foods visible in a tray photo. The core only
// consumes this output shape; detection itself is an external collaborator.
type FoodDetector interface {
	DetectFoods(ctx context.Context, imageBase64 string) ([]DetectedFood, error)
}

// GatewayFoodDetector calls an OpenAI-compatible chat-completions gateway
// with a vision model and a forced detect_foods tool call.
type GatewayFoodDetector struct {
	client *http.Client
	url    string
	key    string
	model  string
}

func NewGatewayFoodDetector() *GatewayFoodDetector {
	model := os.Getenv("AI_GATEWAY_MODEL")
	if model == "" {
		model = "google/gemini-2.5-pro"
	}
	return &GatewayFoodDetector{
		client: &http.Client{Timeout: 30 * time.Second},
		url:    os.Getenv("AI_GATEWAY_URL"),
		key:    os.Getenv("AI_GATEWAY_KEY"),
		model:  model,
	}
}

const detectionSystemPrompt = `You are a food detection AI for a school cafeteria sustainability app.
Analyze food images and identify each food item visible on the tray or plate.

For each food item, provide:
1. name: The food name (e.g., "Grilled Chicken", "Steamed Broccoli")
2. category: One of "protein", "vegetables", "grains", "dairy", "fruits", "beverage", "dessert"
3. carbonFootprint: Estimated kg CO₂ per serving (use these guidelines):
   - Beef: 4-6 kg
   - Lamb: 3-5 kg
   - Pork: 1.5-2.5 kg
   - Chicken/Turkey: 1-2 kg
   - Fish: 1-3 kg
   - Eggs: 0.5-1 kg
   - Dairy: 0.5-2 kg
   - Grains/Rice: 0.3-1 kg
   - Vegetables: 0.1-0.5 kg
   - Fruits: 0.1-0.4 kg
   - Legumes/Beans: 0.2-0.5 kg
   - Processed foods: 1-3 kg
4. isPlantBased: true if the item contains no animal products

Be accurate and realistic. If you can't identify a food clearly, make your best educated guess based on appearance.`

// detectFoodsTool is the function schema the model is forced to answer with.
var detectFoodsTool = map[string]any{
	"type": "function",
	"function": map[string]any{
		"name":        "detect_foods",
		"description": "Return the detected food items from the image",
		"parameters": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"foods": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name": map[string]any{"type": "string"},
							"category": map[string]any{
								"type": "string",
								"enum": []string{"protein", "vegetables", "grains", "dairy", "fruits", "beverage", "dessert"},
							},
							"carbonFootprint": map[string]any{"type": "number"},
							"isPlantBased":    map[string]any{"type": "boolean"},
						},
						"required": []string{"name", "category", "carbonFootprint", "isPlantBased"},
					},
				},
			},
			"required": []string{"foods"},
		},
	},
}

func (d *GatewayFoodDetector) DetectFoods(ctx context.Context, imageBase64 string) ([]DetectedFood, error) {
	if d.key == "" {
		return nil, fmt.Errorf("AI_GATEWAY_KEY not set")
	}

	body := map[string]any{
		"model": d.model,
		"messages": []map[string]any{
			{"role": "system", "content": detectionSystemPrompt},
			{"role": "user", "content": []map[string]any{
				{"type": "text", "text": "Please analyze this meal image and identify all visible food items. Return the results as a JSON array."},
				{"type": "image_url", "image_url": map[string]any{"url": imageBase64}},
			}},
		},
		"tools":       []any{detectFoodsTool},
		"tool_choice": map[string]any{"type": "function", "function": map[string]any{"name": "detect_foods"}},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+d.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response error: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusPaymentRequired:
		return nil, ErrQuotaExceeded
	default:
		var gwErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBytes, &gwErr) == nil && gwErr.Error != "" {
			return nil, fmt.Errorf("gateway error (%d): %s", resp.StatusCode, gwErr.Error)
		}
		return nil, fmt.Errorf("gateway error (%d): %s", resp.StatusCode, string(respBytes))
	}

	foods, err := parseDetectionResponse(respBytes)
	if err != nil {
		return nil, err
	}
	if len(foods) == 0 {
		return nil, ErrNoFoodDetected
	}
	return foods, nil
}

func parseDetectionResponse(respBytes []byte) ([]DetectedFood, error) {
	var out struct {
		Choices []struct {
			Message struct {
				ToolCalls []struct {
					Function struct {
						Arguments string `json:"arguments"`
					} `json:"function"`
				} `json:"tool_calls"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return nil, fmt.Errorf("decode gateway response error: %w", err)
	}
	if len(out.Choices) == 0 || len(out.Choices[0].Message.ToolCalls) == 0 {
		return nil, ErrNoFoodDetected
	}

	var args struct {
		Foods []DetectedFood `json:"foods"`
	}
	if err := json.Unmarshal([]byte(out.Choices[0].Message.ToolCalls[0].Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("decode tool arguments error: %w", err)
	}

	for i := range args.Foods {
		// The tool schema says "beverage", the catalog says "beverages".
		if args.Foods[i].Category == "beverage" {
			args.Foods[i].Category = models.CategoryBeverages
		}
	}
	return args.Foods, nil
}
