package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecotaste-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDetector(t *testing.T, handler http.HandlerFunc) *GatewayFoodDetector {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &GatewayFoodDetector{
		client: &http.Client{Timeout: 5 * time.Second},
		url:    srv.URL,
		key:    "test-key",
		model:  "test-model",
	}
}

func toolCallResponse(t *testing.T, args any) []byte {
	t.Helper()
	argJSON, err := json.Marshal(args)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{{
			"message": map[string]any{
				"tool_calls": []map[string]any{{
					"function": map[string]any{
						"name":      "detect_foods",
						"arguments": string(argJSON),
					},
				}},
			},
		}},
	})
	require.NoError(t, err)
	return body
}

func TestGatewayFoodDetector_Success(t *testing.T) {
	detector := testDetector(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model      string           `json:"model"`
			Messages   []map[string]any `json:"messages"`
			ToolChoice map[string]any   `json:"tool_choice"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)

		w.Write(toolCallResponse(t, map[string]any{
			"foods": []map[string]any{
				{"name": "Grilled Chicken", "category": "protein", "carbonFootprint": 1.5, "isPlantBased": false},
				{"name": "Orange Juice", "category": "beverage", "carbonFootprint": 0.3, "isPlantBased": true},
			},
		}))
	})

	foods, err := detector.DetectFoods(context.Background(), "data:image/jpeg;base64,Zm9vZA==")
	require.NoError(t, err)
	require.Len(t, foods, 2)

	assert.Equal(t, "Grilled Chicken", foods[0].Name)
	assert.Equal(t, models.CategoryProtein, foods[0].Category)
	assert.InDelta(t, 1.5, foods[0].CarbonFootprint, 1e-9)
	assert.Equal(t, models.CategoryBeverages, foods[1].Category, "singular gateway category is normalized")
}

func TestGatewayFoodDetector_Failures(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		expectedErr error
	}{
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			expectedErr: ErrRateLimited,
		},
		{
			name: "quota exceeded",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusPaymentRequired)
			},
			expectedErr: ErrQuotaExceeded,
		},
		{
			name: "empty food list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write(toolCallResponse(t, map[string]any{"foods": []any{}}))
			},
			expectedErr: ErrNoFoodDetected,
		},
		{
			name: "no tool call in answer",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices":[{"message":{"content":"I see food"}}]}`))
			},
			expectedErr: ErrNoFoodDetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := testDetector(t, tt.handler)
			_, err := detector.DetectFoods(context.Background(), "data:image/jpeg;base64,Zm9vZA==")
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestGatewayFoodDetector_ServerError(t *testing.T) {
	detector := testDetector(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"upstream model unavailable"}`))
	})

	_, err := detector.DetectFoods(context.Background(), "data:image/jpeg;base64,Zm9vZA==")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream model unavailable")
}

func TestGatewayFoodDetector_MissingKey(t *testing.T) {
	detector := &GatewayFoodDetector{client: http.DefaultClient}
	_, err := detector.DetectFoods(context.Background(), "data:image/jpeg;base64,Zm9vZA==")
	assert.Error(t, err)
}
