package storage

import (
	"context"
	"sync"
)

// MemoryStorage is an in-memory Storage implementation.
// State is lost on process exit; intended for tests and ephemeral sessions.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStorage creates an empty in-memory store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		blobs: make(map[string][]byte),
	}
}

// Get returns the blob stored under key
func (m *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.blobs[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	// Return a copy so callers cannot mutate stored state
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put stores the blob under key
func (m *MemoryStorage) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.blobs[key] = stored
	return nil
}

// Delete removes the key
func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, key)
	return nil
}

// Close is a no-op for the in-memory store
func (m *MemoryStorage) Close() error {
	return nil
}

// Ensure MemoryStorage implements Storage
var _ Storage = (*MemoryStorage)(nil)
