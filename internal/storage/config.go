package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// Config holds storage configuration
type Config struct {
	Type   string // "local" or "s3"
	Dir    string // Directory for local storage
	Bucket string
	Region string
	Prefix string // Key prefix inside the bucket
}

// New builds the archive selected by cfg.Type.
func New(ctx context.Context, cfg Config) (Archive, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalArchive(cfg.Dir)
	case "s3":
		return NewS3Archive(ctx, cfg.Bucket, cfg.Region, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.Type)
	}
}

// cleanKey rejects absolute keys and keys escaping the archive root.
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return cleaned, nil
}
