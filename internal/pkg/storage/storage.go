// Package storage keeps derived media files, such as thumbnails, on local disk.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when nothing is stored at a path.
var ErrNotFound = errors.New("storage: file not found")

// Storage defines the interface for file storage operations.
type Storage interface {
	// Save stores content at the relative path, replacing any previous file.
	// Readers never observe a partially written file.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the relative path, or returns ErrNotFound.
	Get(ctx context.Context, path string) (io.ReadCloser, error)
}
