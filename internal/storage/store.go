// Package storage keeps profile pictures of doctors and patients.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
)

type Image struct {
	URL      string
	PublicID string
}

type ImageStore interface {
	// Upload stores a WebP image under name (no extension).
	Upload(ctx context.Context, name string, r io.Reader) (Image, error)
	Delete(ctx context.Context, publicID string) error
}

// New returns the store selected by STORAGE_DRIVER, or nil when images are
// disabled.
func New(cfg *config.Config) (ImageStore, error) {
	switch cfg.StorageDriver {
	case config.StorageCloudinary:
		store, err := NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageS3:
		return NewS3(S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		}), nil
	case config.StorageNone, "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
