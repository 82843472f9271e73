package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage on the local filesystem.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a local storage rooted at cfg.BasePath. The
// root is created up front; MkdirAll is idempotent so concurrent
// initialization is safe.
func NewLocalStorage(cfg Config) (*LocalStorage, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./public/reports"
	}

	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: cfg.BasePath,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

// Save stores a file under the upload root.
func (s *LocalStorage) Save(ctx context.Context, name string, reader io.Reader) error {
	fullPath := s.Path(name)

	// The root can disappear between startup and now (ops cleanup);
	// recreating it is idempotent.
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Delete removes a file by its storage-layer path.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists checks whether a storage-layer path has a file behind it.
func (s *LocalStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Path returns the on-disk path for a stored name.
func (s *LocalStorage) Path(name string) string {
	return filepath.Join(s.basePath, name)
}

// URL returns the public URL a stored name is served under.
func (s *LocalStorage) URL(name string) string {
	if s.baseURL == "" {
		return fmt.Sprintf("/reports/%s", name)
	}
	return fmt.Sprintf("%s/%s", s.baseURL, name)
}
