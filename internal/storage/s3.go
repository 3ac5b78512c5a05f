package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/festhub/eventhub/internal/config"
	"github.com/festhub/eventhub/internal/pkg/logger"
)

// S3Store uploads images to an S3 (or S3 compatible) bucket
type S3Store struct {
	client  *s3.Client
	bucket  string
	prefix  string
	baseURL string
	logger  *logger.Logger
}

// NewS3Store creates an S3 backed image store. Static keys are used when
// configured, otherwise the default AWS credential chain applies.
func NewS3Store(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		baseURL: baseURL,
		logger:  log,
	}, nil
}

// Save uploads the image and returns its public URL
func (s *S3Store) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	name := cleanName(filename)
	if name == "" {
		return "", fmt.Errorf("invalid upload filename %q", filename)
	}
	key := s.prefix + name

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"bucket": s.bucket,
			"key":    key,
		}).Error("Failed to upload image to S3")
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}

	return objectURL(s.baseURL, key), nil
}
