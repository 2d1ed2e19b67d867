package storage

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront/client/internal/config"
)

// New creates a Storage backend from configuration
func New(cfg config.StorageConfig, logger *zap.Logger) (Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case "memory":
		logger.Debug("using in-memory storage, state will not survive restart")
		return NewMemoryStorage(), nil
	case "sqlite":
		store, err := NewSqliteStorage(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite storage: %w", err)
		}
		logger.Debug("using sqlite storage", zap.String("path", cfg.Path))
		return store, nil
	case "redis":
		store, err := NewRedisStorage(RedisOptions{
			Addr:     cfg.Redis.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis storage: %w", err)
		}
		logger.Debug("using redis storage", zap.String("addr", cfg.Redis.RedisAddr()))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
