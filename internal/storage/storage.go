package storage

import (
	"context"
	"io"
)

// Storage is the narrow capability interface over physical file
// placement. The file service directs it; it knows nothing about
// reports.
type Storage interface {
	// Save stores a file under the upload root with the given name.
	Save(ctx context.Context, name string, reader io.Reader) error

	// Delete removes a file by its storage-layer path (as returned by
	// Path). A missing file is not an error.
	Delete(ctx context.Context, path string) error

	// Exists checks whether a storage-layer path has a file behind it.
	Exists(ctx context.Context, path string) (bool, error)

	// Path returns the storage-layer path for a stored name.
	Path(name string) string

	// URL returns the public-facing URL for a stored name.
	URL(name string) string
}

// Config holds storage configuration.
type Config struct {
	BasePath string // upload root on disk
	BaseURL  string // public alias files are served under
}
