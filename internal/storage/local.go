package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalArchive keeps receipts in a directory on the local filesystem
type LocalArchive struct {
	dir string
}

// NewLocalArchive creates the archive directory if it doesn't exist
func NewLocalArchive(dir string) (*LocalArchive, error) {
	if dir == "" {
		return nil, errors.New("archive directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalArchive{dir: dir}, nil
}

// Save writes the file atomically under the archive directory
func (a *LocalArchive) Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	fullPath, err := a.path(key)
	if err != nil {
		return "", err
	}

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".receipt-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}
	return fullPath, nil
}

// Open reads file from local filesystem
func (a *LocalArchive) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := a.path(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Exists checks if file exists in local filesystem
func (a *LocalArchive) Exists(ctx context.Context, key string) (bool, int64, error) {
	fullPath, err := a.path(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (a *LocalArchive) path(key string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(a.dir, filepath.FromSlash(cleaned)), nil
}
