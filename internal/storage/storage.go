package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/emberstudio/ember/internal/config"
	"github.com/emberstudio/ember/internal/logging"
	"github.com/emberstudio/ember/internal/metrics"
)

// defaultPresignExpiry applies when the config leaves the expiry unset.
const defaultPresignExpiry = 15 * time.Minute

// Storage provides object storage operations for media assets
type Storage struct {
	client        *minio.Client
	bucketName    string
	presignExpiry time.Duration
	logger        *logging.Logger
}

// New creates a new storage client
func New(cfg config.StorageConfig, logger *logging.Logger) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	// Ensure bucket exists
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Storage{
		client:        client,
		bucketName:    cfg.BucketName,
		presignExpiry: presignExpiryFor(cfg),
		logger:        logger,
	}, nil
}

func presignExpiryFor(cfg config.StorageConfig) time.Duration {
	if cfg.PresignExpiry > 0 {
		return cfg.PresignExpiry
	}
	return defaultPresignExpiry
}

// observe records the metrics and log line for one storage operation.
func (s *Storage) observe(operation, key string, size int64, start time.Time, err error) {
	elapsed := time.Since(start)
	status := "success"
	if err != nil {
		status = "error"
		metrics.RecordError("storage", operation)
	}
	metrics.RecordStorageOperation(operation, status, elapsed.Seconds())
	if s.logger != nil {
		s.logger.LogStorageOperation(operation, s.bucketName, key, size, elapsed, err)
	}
}

// Put uploads a media asset to storage
func (s *Storage) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	start := time.Now()
	_, err := s.client.PutObject(ctx, s.bucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	s.observe("put", objectName, size, start, err)
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	return nil
}

// Get downloads a media asset from storage
func (s *Storage) Get(ctx context.Context, objectName string) (io.ReadCloser, error) {
	start := time.Now()
	object, err := s.client.GetObject(ctx, s.bucketName, objectName, minio.GetObjectOptions{})
	s.observe("get", objectName, 0, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to download object: %w", err)
	}

	return object, nil
}

// Delete deletes a media asset from storage
func (s *Storage) Delete(ctx context.Context, objectName string) error {
	start := time.Now()
	err := s.client.RemoveObject(ctx, s.bucketName, objectName, minio.RemoveObjectOptions{})
	s.observe("delete", objectName, 0, start, err)
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// GetURL returns a presigned URL for a media asset. The link expires
// after the configured presign window.
func (s *Storage) GetURL(ctx context.Context, objectName string) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucketName, objectName, s.presignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate URL: %w", err)
	}

	return url.String(), nil
}

// StillURL returns a presigned URL addressing a single frame of a video
// asset via a media fragment. Browsers seek to the offset and display the
// frame, which serves as the clip thumbnail without a server-side extract.
func (s *Storage) StillURL(ctx context.Context, objectName string, offset time.Duration) (string, error) {
	url, err := s.GetURL(ctx, objectName)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s#t=%g", url, offset.Seconds()), nil
}

// List lists media assets with a prefix
func (s *Storage) List(ctx context.Context, prefix string) ([]string, error) {
	start := time.Now()
	var objects []string

	for object := range s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			s.observe("list", prefix, 0, start, object.Err)
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		objects = append(objects, object.Key)
	}

	s.observe("list", prefix, 0, start, nil)
	return objects, nil
}

// ContentType returns the content type based on file extension
func ContentType(fileName string) string {
	ext := filepath.Ext(fileName)
	switch ext {
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
