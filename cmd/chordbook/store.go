package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"chordbook/config"
	"chordbook/internal/lib/logger/utils"
	"chordbook/internal/storage"
	"chordbook/internal/storage/cache"
	"chordbook/internal/storage/httpstore"
	"chordbook/internal/storage/postgres"
)

// openStore picks the document store from cfg: the remote HTTP store when
// STORE_URL is set, Postgres otherwise, behind Redis when REDIS_URL is set.
// The returned func releases every connection it opened.
func openStore(ctx context.Context, cfg *config.Config) (storage.DocumentStore, func(), error) {
	var (
		store   storage.DocumentStore
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.StoreURL != "" {
		store = httpstore.NewClient(cfg.StoreURL)
		utils.Logger.Info("Using remote document store", zap.String("url", cfg.StoreURL))
	} else {
		pool, err := postgres.Connect(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		closers = append(closers, pool.Close)
		store = postgres.NewPgStorage(pool)
		utils.Logger.Info("Database connected", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
	}

	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = client.Close() })
		store = cache.New(store, client, cfg.CacheTTL)
		utils.Logger.Info("Redis cache enabled", zap.Duration("ttl", cfg.CacheTTL))
	}

	return store, closeAll, nil
}
