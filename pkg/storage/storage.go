package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNoSave is returned by Latest when nothing has been saved.
var ErrNoSave = errors.New("no saved game found")

// Save is one snapshot of client game state. The payload is opaque.
type Save struct {
	ID        string          `json:"save_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// SaveStore keeps game saves. Implementations are safe for concurrent use
// and never overwrite an existing save.
type SaveStore interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Save stores data under a new id derived from the current time.
	Save(ctx context.Context, data json.RawMessage) (Save, error)
	// Latest returns the most recently stored save, or ErrNoSave.
	Latest(ctx context.Context) (Save, error)
}

// SaveID returns the id for a save made at t. Saves within the same second
// are told apart by attempt, which starts at 1.
func SaveID(t time.Time, attempt int) string {
	id := "save_" + t.Format("20060102_150405")
	if attempt > 1 {
		id = fmt.Sprintf("%s_%d", id, attempt)
	}
	return id
}
