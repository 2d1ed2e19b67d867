package storage

import "github.com/storefront/client/internal/config"

// testStorageConfig builds a minimal StorageConfig for factory tests
func testStorageConfig(backend, path string) config.StorageConfig {
	return config.StorageConfig{
		Backend: backend,
		Path:    path,
		Redis: config.RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
	}
}
