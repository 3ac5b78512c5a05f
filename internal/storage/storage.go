package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/festhub/eventhub/internal/config"
	"github.com/festhub/eventhub/internal/pkg/logger"
)

// ImageStore persists uploaded event images and returns the reference
// stored on the event.
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// New builds the image store selected by cfg.Backend
func New(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (ImageStore, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStore(cfg.LocalDir, log)
	case "s3":
		return NewS3Store(ctx, cfg, log)
	case "gcs":
		return NewGCSStore(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}

// cleanName strips directory components so an upload cannot escape its
// destination. It returns "" when nothing usable remains.
func cleanName(filename string) string {
	name := path.Base(path.Clean("/" + strings.ReplaceAll(filename, "\\", "/")))
	if name == "/" || name == "." || name == ".." {
		return ""
	}
	return name
}

// objectURL joins a public base URL and an object key
func objectURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
