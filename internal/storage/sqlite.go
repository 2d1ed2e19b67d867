package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// blob is the single-table schema backing SqliteStorage
type blob struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     []byte
	UpdatedAt time.Time
}

func (blob) TableName() string {
	return "blobs"
}

// SqliteStorage persists blobs in a local SQLite database.
// This is the default durable backend for a client running on one machine.
type SqliteStorage struct {
	db *gorm.DB
}

// NewSqliteStorage opens (creating if needed) the database at path
func NewSqliteStorage(path string) (*SqliteStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&blob{}); err != nil {
		return nil, fmt.Errorf("storage: failed to migrate blob table: %w", err)
	}

	return &SqliteStorage{db: db}, nil
}

// Get returns the blob stored under key
func (s *SqliteStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var b blob
	err := s.db.WithContext(ctx).First(&b, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: failed to read %q: %w", key, err)
	}
	return b.Value, nil
}

// Put stores the blob under key
func (s *SqliteStorage) Put(ctx context.Context, key string, value []byte) error {
	b := blob{Key: key, Value: value, UpdatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Save(&b).Error; err != nil {
		return fmt.Errorf("storage: failed to write %q: %w", key, err)
	}
	return nil
}

// Delete removes the key
func (s *SqliteStorage) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&blob{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("storage: failed to delete %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database connection
func (s *SqliteStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure SqliteStorage implements Storage
var _ Storage = (*SqliteStorage)(nil)
