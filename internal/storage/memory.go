package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/jwebster45206/outpost-engine/pkg/storage"
)

// MemoryStorage keeps saves in process memory. Saves are lost on restart.
type MemoryStorage struct {
	mu     sync.Mutex
	saves  map[string]storage.Save
	latest string
	now    func() time.Time
	logger *slog.Logger
}

var _ storage.SaveStore = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty store.
func NewMemoryStorage(logger *slog.Logger) *MemoryStorage {
	return &MemoryStorage{
		saves:  make(map[string]storage.Save),
		now:    time.Now,
		logger: logger,
	}
}

func (m *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

func (m *MemoryStorage) Save(ctx context.Context, data json.RawMessage) (storage.Save, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	id := storage.SaveID(now, 1)
	for attempt := 2; ; attempt++ {
		if _, taken := m.saves[id]; !taken {
			break
		}
		id = storage.SaveID(now, attempt)
	}

	s := storage.Save{ID: id, Data: data, Timestamp: now}
	m.saves[id] = s
	m.latest = id

	m.logger.Debug("Game saved", "save_id", id, "bytes", len(data))
	return s, nil
}

func (m *MemoryStorage) Latest(ctx context.Context) (storage.Save, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.latest == "" {
		return storage.Save{}, storage.ErrNoSave
	}
	return m.saves[m.latest], nil
}
