package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage persists blobs in Redis. Suitable when the same session
// state should be visible to multiple client instances (e.g. a kiosk fleet).
type RedisStorage struct {
	client    *redis.Client
	keyPrefix string
}

// RedisOptions holds Redis connection settings
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStorage connects to Redis and verifies the connection
func NewRedisStorage(opts RedisOptions) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("storage: failed to connect to Redis: %w", err)
	}

	return &RedisStorage{
		client:    client,
		keyPrefix: "storefront:state:",
	}, nil
}

// NewRedisStorageWithClient creates a store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisStorageWithClient(client *redis.Client, keyPrefix string) *RedisStorage {
	if keyPrefix == "" {
		keyPrefix = "storefront:state:"
	}
	return &RedisStorage{client: client, keyPrefix: keyPrefix}
}

// Get returns the blob stored under key
func (s *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: failed to read %q: %w", key, err)
	}
	return value, nil
}

// Put stores the blob under key with no expiration
func (s *RedisStorage) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("storage: failed to write %q: %w", key, err)
	}
	return nil
}

// Delete removes the key
func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("storage: failed to delete %q: %w", key, err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisStorage) Close() error {
	return s.client.Close()
}

// Ensure RedisStorage implements Storage
var _ Storage = (*RedisStorage)(nil)
