package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound   = errors.New("archived file not found")
	ErrInvalidKey = errors.New("invalid archive key")
)

// Archive stores generated receipt PDFs.
// Supports both the local filesystem and S3.
type Archive interface {
	// Save stores the content under key and returns where it ended up
	// (a filesystem path or an s3:// URI).
	Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error)

	// Open returns the stored content. Missing keys yield ErrNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists checks if a key exists and returns its size
	Exists(ctx context.Context, key string) (exists bool, size int64, err error)
}
