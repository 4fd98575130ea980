package storage

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MockStorage is an in-process SaveStore for tests whose failures can be
// switched on.
type MockStorage struct {
	mu        sync.RWMutex
	saves     []Save
	pingError error
	saveError error
}

// Ensure MockStorage implements SaveStore interface
var _ SaveStore = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

// SetPingError configures the mock to fail on ping with the given error.
// Pass nil to succeed again.
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures the mock to fail on Save and Latest.
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) Save(ctx context.Context, data json.RawMessage) (Save, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return Save{}, m.saveError
	}
	now := time.Now()
	s := Save{ID: SaveID(now, len(m.saves)+1), Data: data, Timestamp: now}
	m.saves = append(m.saves, s)
	return s, nil
}

func (m *MockStorage) Latest(ctx context.Context) (Save, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.saveError != nil {
		return Save{}, m.saveError
	}
	if len(m.saves) == 0 {
		return Save{}, ErrNoSave
	}
	return m.saves[len(m.saves)-1], nil
}
