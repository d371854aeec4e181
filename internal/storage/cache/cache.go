// Package cache keeps a Redis copy of each collection's FetchAll result in
// front of a slower document store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"chordbook/internal/lib/logger/utils"
	"chordbook/internal/models"
	"chordbook/internal/storage"
)

const keyPrefix = "chordbook:collection:"

type CachedStore struct {
	inner  storage.DocumentStore
	client *redis.Client
	ttl    time.Duration
}

func New(inner storage.DocumentStore, client *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl}
}

// Connect parses a redis:// or rediss:// URL and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func key(collection string) string {
	return keyPrefix + collection
}

// FetchAll serves the cached snapshot when present. Cache errors are logged
// and fall through to the inner store.
func (c *CachedStore) FetchAll(ctx context.Context, collection string) ([]models.Song, error) {
	data, err := c.client.Get(ctx, key(collection)).Bytes()
	switch {
	case err == nil:
		var songs []models.Song
		jsonErr := json.Unmarshal(data, &songs)
		if jsonErr == nil {
			utils.Logger.Debug("CachedStore.FetchAll - cache hit", zap.String("collection", collection), zap.Int("count", len(songs)))
			return songs, nil
		}
		utils.Logger.Warn("CachedStore.FetchAll - corrupt snapshot", zap.Error(jsonErr))
	case errors.Is(err, redis.Nil):
	default:
		utils.Logger.Warn("CachedStore.FetchAll - cache read failed", zap.Error(err))
	}

	songs, err := c.inner.FetchAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(songs); err == nil {
		if err := c.client.Set(ctx, key(collection), data, c.ttl).Err(); err != nil {
			utils.Logger.Warn("CachedStore.FetchAll - cache write failed", zap.Error(err))
		}
	}
	return songs, nil
}

func (c *CachedStore) Insert(ctx context.Context, collection string, fields models.SongFields) (string, error) {
	id, err := c.inner.Insert(ctx, collection, fields)
	if err != nil {
		return "", err
	}
	c.invalidate(ctx, collection)
	return id, nil
}

func (c *CachedStore) Replace(ctx context.Context, collection string, id string, fields models.SongFields) error {
	if err := c.inner.Replace(ctx, collection, id, fields); err != nil {
		return err
	}
	c.invalidate(ctx, collection)
	return nil
}

func (c *CachedStore) invalidate(ctx context.Context, collection string) {
	if err := c.client.Del(ctx, key(collection)).Err(); err != nil {
		utils.Logger.Warn("CachedStore - cache invalidation failed", zap.Error(err), zap.String("collection", collection))
	}
}
