package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/outpost-engine/pkg/storage"
)

const (
	savePrefix = "save:"
	latestKey  = "save:latest"

	// maxSaveAttempts bounds the search for a free id within one second.
	maxSaveAttempts = 100
)

// RedisStorage keeps saves in Redis so they survive restarts and can be
// shared between server instances.
type RedisStorage struct {
	client *redis.Client
	now    func() time.Time
	logger *slog.Logger
}

// Ensure RedisStorage implements SaveStore interface
var _ storage.SaveStore = (*RedisStorage)(nil)

// NewRedisStorage connects to redisURL, e.g. redis://localhost:6379/0.
func NewRedisStorage(ctx context.Context, redisURL string, logger *slog.Logger) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Connected to Redis for save storage", "addr", opt.Addr, "db", opt.DB)

	return &RedisStorage{
		client: rdb,
		now:    time.Now,
		logger: logger,
	}, nil
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// Save claims the first free id with SETNX so concurrent writers, even
// across instances, never overwrite each other.
func (r *RedisStorage) Save(ctx context.Context, data json.RawMessage) (storage.Save, error) {
	now := r.now()

	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		s := storage.Save{ID: storage.SaveID(now, attempt), Data: data, Timestamp: now}
		payload, err := json.Marshal(s)
		if err != nil {
			return storage.Save{}, fmt.Errorf("failed to marshal save: %w", err)
		}

		ok, err := r.client.SetNX(ctx, savePrefix+s.ID, payload, 0).Result()
		if err != nil {
			r.logger.Error("Failed to save game", "save_id", s.ID, "error", err)
			return storage.Save{}, fmt.Errorf("failed to save game: %w", err)
		}
		if !ok {
			continue
		}

		if err := r.client.Set(ctx, latestKey, s.ID, 0).Err(); err != nil {
			r.logger.Error("Failed to record latest save", "save_id", s.ID, "error", err)
			return storage.Save{}, fmt.Errorf("failed to record latest save: %w", err)
		}
		r.logger.Debug("Game saved", "save_id", s.ID, "bytes", len(data))
		return s, nil
	}

	return storage.Save{}, fmt.Errorf("no free save id after %d attempts", maxSaveAttempts)
}

func (r *RedisStorage) Latest(ctx context.Context) (storage.Save, error) {
	id, err := r.client.Get(ctx, latestKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return storage.Save{}, storage.ErrNoSave
		}
		return storage.Save{}, fmt.Errorf("failed to load latest save id: %w", err)
	}

	payload, err := r.client.Get(ctx, savePrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Warn("Latest save is missing", "save_id", id)
			return storage.Save{}, storage.ErrNoSave
		}
		return storage.Save{}, fmt.Errorf("failed to load save: %w", err)
	}

	var s storage.Save
	if err := json.Unmarshal(payload, &s); err != nil {
		return storage.Save{}, fmt.Errorf("failed to unmarshal save: %w", err)
	}
	return s, nil
}
