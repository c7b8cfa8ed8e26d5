package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/debemdeboas/quote-saver/internal/config"
	"github.com/debemdeboas/quote-saver/internal/db"
	"github.com/debemdeboas/quote-saver/internal/util/compression"
)

// Open builds the store described by cfg.
func Open(cfg config.StorageConfig) (Store, error) {
	var store Store

	switch cfg.Backend {
	case config.BackendMemory:
		store = NewMemoryStore()
	case config.BackendFS:
		fsStore, err := NewFSStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		store = fsStore
	case config.BackendSQLite:
		sqlite := db.NewSQLite(cfg.SQLite.Path)
		if err := sqlite.InitDB(); err != nil {
			sqlite.Close()
			return nil, fmt.Errorf("init sqlite: %w", err)
		}
		store = NewSQLiteStore(sqlite)
	case config.BackendS3:
		opts := S3Options{
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Timeout:         time.Duration(cfg.S3.TimeoutSeconds) * time.Second,
		}
		client, err := NewS3Client(context.Background(), opts)
		if err != nil {
			return nil, err
		}
		store = NewS3Store(client, opts)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	c, err := compression.ByName(cfg.Compression)
	if err != nil {
		store.Close()
		return nil, err
	}
	if c != nil {
		store = NewCompressedStore(store, c)
	}

	storageLogger.Info().
		Str("backend", cfg.Backend).
		Str("compression", cfg.Compression).
		Msg("Storage opened")
	return store, nil
}
