package services

import (
	"context"
	"errors"
	"fmt"
)

// ErrCompletionFailed matches every *CompletionError.
var ErrCompletionFailed = errors.New("completion failed")

// CompletionError reports a failed round trip to the completion service:
// a transport error, a timeout or a non-2xx status.
type CompletionError struct {
	StatusCode int    // 0 when no response was received
	Body       string // response body, if any
	Err        error
}

func (e *CompletionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("completion failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

func (e *CompletionError) Is(target error) bool {
	return target == ErrCompletionFailed
}

// GenerateRequest is a single non-streaming completion.
type GenerateRequest struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// CompletionService turns a prompt into text. Implementations make at most
// one attempt per call.
type CompletionService interface {
	// Generate returns the raw completion text.
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// ListModels returns the models the service can run.
	ListModels(ctx context.Context) ([]string, error)
}
