// Package storage fronts the object store that holds document blobs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hugh/scoutzos/pkg/config"
)

// ErrNotConfigured is returned by New when no provider is configured.
var ErrNotConfigured = errors.New("object storage is not configured")

// ObjectStore signs download URLs for stored objects and removes them.
// Deleting a missing object is not an error.
type ObjectStore interface {
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

var (
	_ ObjectStore = (*S3Store)(nil)
	_ ObjectStore = (*GCSStore)(nil)
	_ ObjectStore = (*MemoryStore)(nil)
)

// New builds the store selected by cfg.Provider.
func New(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (ObjectStore, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	switch cfg.Provider {
	case "s3":
		store, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("creating s3 store: %w", err)
		}
		logger.Info("object storage ready", "provider", "s3", "bucket", cfg.Bucket, "region", cfg.Region)
		return store, nil
	case "gcs":
		store, err := NewGCSStore(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("creating gcs store: %w", err)
		}
		logger.Info("object storage ready", "provider", "gcs", "bucket", cfg.Bucket)
		return store, nil
	case "memory":
		logger.Warn("using in-memory object storage; blobs are not persisted")
		return NewMemoryStore("http://localhost/" + cfg.Bucket), nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
