package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/festhub/eventhub/internal/pkg/logger"
)

// LocalStore writes uploads into a directory served at /uploads/
type LocalStore struct {
	dir    string
	logger *logger.Logger
}

// NewLocalStore creates dir if needed
func NewLocalStore(dir string, log *logger.Logger) (*LocalStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir, logger: log}, nil
}

// Dir returns the directory uploads are written to
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes the upload under its original name, replacing any file with
// the same name.
func (s *LocalStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	name := cleanName(filename)
	if name == "" {
		return "", fmt.Errorf("invalid upload filename %q", filename)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"file":         name,
		"content_type": contentType,
	}).Debug("Stored upload locally")

	return "uploads/" + name, nil
}
