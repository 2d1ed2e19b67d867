// Package storage provides durable key/blob storage for store slices.
// It mirrors the browser localStorage contract: named keys holding
// JSON-serialized snapshots, read once at startup and rewritten on
// every relevant mutation.
package storage

import (
	"context"
	"errors"
)

// Well-known keys used by the store slices
const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
	KeySession  = "session"
)

// ErrKeyNotFound indicates the requested key has never been written
var ErrKeyNotFound = errors.New("storage: key not found")

// Storage is a durable key/blob store
type Storage interface {
	// Get returns the blob stored under key, or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores the blob under key, overwriting any previous value
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes the key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
	// Close releases any underlying resources
	Close() error
}
