package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/festhub/eventhub/internal/config"
	"github.com/festhub/eventhub/internal/pkg/logger"
)

// GCSStore uploads images to a Google Cloud Storage bucket
type GCSStore struct {
	client  *gcs.Client
	bucket  string
	prefix  string
	baseURL string
	logger  *logger.Logger
}

// NewGCSStore creates a GCS backed image store
func NewGCSStore(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*GCSStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com/" + cfg.Bucket
	}

	return &GCSStore{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		baseURL: baseURL,
		logger:  log,
	}, nil
}

// Save streams the image into the bucket and returns its public URL
func (s *GCSStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	name := cleanName(filename)
	if name == "" {
		return "", fmt.Errorf("invalid upload filename %q", filename)
	}
	key := s.prefix + name

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload to gcs: %w", err)
	}
	if err := w.Close(); err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"bucket": s.bucket,
			"object": key,
		}).Error("Failed to upload image to GCS")
		return "", fmt.Errorf("failed to upload to gcs: %w", err)
	}

	return objectURL(s.baseURL, key), nil
}

// Close releases the underlying client
func (s *GCSStore) Close() error {
	return s.client.Close()
}
