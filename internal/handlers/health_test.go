package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/outpost-engine/internal/services"
	"github.com/jwebster45206/outpost-engine/pkg/storage"
)

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name            string
		storageErr      error
		modelsErr       error
		expectedStatus  int
		expectedHealth  string
		expectedStorage string
		expectedOllama  string
	}{
		{
			name:            "all healthy",
			expectedStatus:  http.StatusOK,
			expectedHealth:  "healthy",
			expectedStorage: "healthy",
			expectedOllama:  "healthy",
		},
		{
			name:            "unhealthy storage",
			storageErr:      errors.New("connection failed"),
			expectedStatus:  http.StatusServiceUnavailable,
			expectedHealth:  "unhealthy",
			expectedStorage: "unhealthy",
			expectedOllama:  "healthy",
		},
		{
			name:            "unreachable ollama only degrades",
			modelsErr:       &services.CompletionError{Err: errors.New("connection refused")},
			expectedStatus:  http.StatusOK,
			expectedHealth:  "degraded",
			expectedStorage: "healthy",
			expectedOllama:  "unhealthy",
		},
		{
			name:            "both down",
			storageErr:      errors.New("connection failed"),
			modelsErr:       errors.New("connection refused"),
			expectedStatus:  http.StatusServiceUnavailable,
			expectedHealth:  "unhealthy",
			expectedStorage: "unhealthy",
			expectedOllama:  "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMockStorage()
			store.SetPingError(tt.storageErr)

			llm := services.NewMockCompletionService("")
			if tt.modelsErr != nil {
				llm.ListModelsFunc = func(context.Context) ([]string, error) {
					return nil, tt.modelsErr
				}
			}

			handler := NewHealthHandler(store, llm, HealthInfo{
				OllamaURL:    "http://ollama:11434",
				OllamaModel:  "llama2-uncensored",
				UseLLMQuests: true,
			}, testLogger())

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)

			var response HealthResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
			assert.Equal(t, tt.expectedHealth, response.Status)
			assert.Equal(t, tt.expectedStorage, response.Components["storage"])
			assert.Equal(t, tt.expectedOllama, response.Components["ollama"])
			assert.Equal(t, "http://ollama:11434", response.OllamaURL)
			assert.Equal(t, "llama2-uncensored", response.OllamaModel)
			assert.True(t, response.UseLLMQuests)
			assert.False(t, response.Timestamp.IsZero())
		})
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	handler := NewHealthHandler(storage.NewMockStorage(), services.NewMockCompletionService(""), HealthInfo{}, testLogger())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodGet, rr.Header().Get("Allow"))
}
