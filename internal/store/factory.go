// Package store provides persistence backends for ingested records.
// Every backend implements the same path-addressed Save contract;
// NewStoreFromConfig selects one based on configuration.
package store

import (
	"context"
	"fmt"

	"remotefs-go/internal/config"
	"remotefs-go/internal/remotefs"
)

// NewStoreFromConfig creates a Store implementation based on the store
// config type.
func NewStoreFromConfig(ctx context.Context, cfg config.StoreConfig) (remotefs.Store, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem store requires fs_root to be set")
		}
		return NewFilesystemStore(cfg.FSRoot)
	case "sqlite":
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite store requires sqlite_path to be set")
		}
		return NewSQLiteStore(cfg.SQLitePath)
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
