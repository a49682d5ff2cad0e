package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"careconnect/internal/config"
)

// Open builds the KV backend selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (KV, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		logger.Debug("Using in-memory settings store")
		return NewMemoryKV(), nil

	case config.BackendSQLite:
		kv, err := NewSQLiteKV(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Debug("Using sqlite settings store", zap.String("path", kv.Path()))
		return kv, nil

	case config.BackendRedis:
		kv := NewRedisKV(NewRedisClient(&cfg.Redis))
		if err := kv.Ping(ctx); err != nil {
			kv.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Debug("Using redis settings store", zap.String("addr", cfg.Redis.Addr))
		return kv, nil

	case config.BackendPostgres:
		db, err := NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, err
		}
		kv := NewPostgresKV(db)
		if err := kv.EnsureSchema(ctx); err != nil {
			kv.Close()
			return nil, err
		}
		logger.Debug("Using postgres settings store", zap.String("host", cfg.Database.Host))
		return kv, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}
