package store

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/storefront/client/internal/api"
	"github.com/storefront/client/internal/storage"
)

// persist mirrors a slice's state to durable storage. Fire-and-forget:
// failures are logged and never surfaced to the mutating caller.
func persist(st storage.Storage, logger *zap.Logger, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Error("failed to encode state for storage",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	if err := st.Put(context.Background(), key, data); err != nil {
		logger.Error("failed to write state to storage",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// hydrate loads a slice's persisted state. Returns false when nothing was
// stored; decode failures are logged and treated as absent.
func hydrate(st storage.Storage, logger *zap.Logger, key string, out any) bool {
	data, err := st.Get(context.Background(), key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false
	}
	if err != nil {
		logger.Error("failed to read state from storage",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Error("failed to decode stored state",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	return true
}

// errorMessage extracts the server's error message when err is an API error,
// falling back to the given default. Mirrors how failed flows surface a
// single string on their slice.
func errorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
