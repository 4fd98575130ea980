package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// OllamaService implements CompletionService for the Ollama generate API.
type OllamaService struct {
	baseURL    string
	modelName  string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ CompletionService = (*OllamaService)(nil)

// NewOllamaService creates a client for the Ollama server at baseURL. Every
// request is bounded by timeout.
func NewOllamaService(baseURL string, modelName string, timeout time.Duration, logger *slog.Logger) *OllamaService {
	return &OllamaService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		modelName: modelName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the server address.
func (s *OllamaService) BaseURL() string {
	return s.baseURL
}

// ModelName returns the model used for completions.
func (s *OllamaService) ModelName() string {
	return s.modelName
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type generateBody struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

// Generate posts the prompt to /api/generate and returns the trimmed
// response text. Failures are *CompletionError.
func (s *OllamaService) Generate(ctx context.Context, gr GenerateRequest) (string, error) {
	jsonBody, err := json.Marshal(generateBody{
		Model:  s.modelName,
		Prompt: gr.Prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: gr.Temperature,
			MaxTokens:   gr.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := s.baseURL + "/api/generate"

	s.logger.Debug("Making Ollama generate request",
		"url", url,
		"model", s.modelName,
		"prompt_length", len(gr.Prompt),
		"max_tokens", gr.MaxTokens)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("Ollama request failed", "error", err, "duration", time.Since(start))
		return "", &CompletionError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return "", &CompletionError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Error("Ollama API returned error",
			"status_code", resp.StatusCode,
			"status", resp.Status,
			"response_body", responseBody.String())
		return "", &CompletionError{StatusCode: resp.StatusCode, Body: responseBody.String()}
	}

	var ollamaResp struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(responseBody.Bytes(), &ollamaResp); err != nil {
		s.logger.Error("Failed to decode Ollama response",
			"error", err,
			"response_body", responseBody.String())
		return "", &CompletionError{Body: responseBody.String(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	s.logger.Debug("Ollama generate completed", "duration", time.Since(start), "response_length", len(ollamaResp.Response))
	return strings.TrimSpace(ollamaResp.Response), nil
}

// ListModels returns the models installed on the server.
func (s *OllamaService) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &CompletionError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &CompletionError{StatusCode: resp.StatusCode}
	}

	var tagsResp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tagsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	models := make([]string, 0, len(tagsResp.Models))
	for _, m := range tagsResp.Models {
		models = append(models, m.Name)
	}
	return models, nil
}
