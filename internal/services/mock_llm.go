package services

import (
	"context"
	"sync"
)

// MockCompletionService is a CompletionService for tests. Unset funcs fall
// back to canned success values.
type MockCompletionService struct {
	GenerateFunc   func(ctx context.Context, req GenerateRequest) (string, error)
	ListModelsFunc func(ctx context.Context) ([]string, error)

	// Track calls for testing
	GenerateCalls   []GenerateRequest
	ListModelsCalls int

	mu sync.Mutex // protects all fields above
}

var _ CompletionService = (*MockCompletionService)(nil)

// NewMockCompletionService creates a mock that returns text from every
// Generate call.
func NewMockCompletionService(text string) *MockCompletionService {
	return &MockCompletionService{
		GenerateFunc: func(context.Context, GenerateRequest) (string, error) {
			return text, nil
		},
	}
}

func (m *MockCompletionService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	m.mu.Lock()
	m.GenerateCalls = append(m.GenerateCalls, req)
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return "Mock response", nil
}

func (m *MockCompletionService) ListModels(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	m.ListModelsCalls++
	fn := m.ListModelsFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return []string{"mock-model"}, nil
}

// Calls returns a copy of the recorded Generate requests.
func (m *MockCompletionService) Calls() []GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GenerateRequest, len(m.GenerateCalls))
	copy(out, m.GenerateCalls)
	return out
}
