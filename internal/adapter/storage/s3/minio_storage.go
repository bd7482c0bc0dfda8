package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ImageStorage keeps board photos in a MinIO bucket and hands out their
// public URLs.
type ImageStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	logger  *logger.Logger
}

func NewImageStorage(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool, log *logger.Logger) (*ImageStorage, error) {
	log = log.Named("ImageStorage")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to make bucket %s: %w", bucket, err)
		}
		log.Info("bucket created", zap.String("bucket", bucket))
	}

	return &ImageStorage{
		client:  client,
		bucket:  bucket,
		baseURL: publicPrefix(client.EndpointURL().String(), bucket),
		logger:  log,
	}, nil
}

func publicPrefix(endpointURL, bucket string) string {
	return strings.TrimSuffix(endpointURL, "/") + "/" + bucket + "/"
}

// Upload stores r under objectName and returns the object URL.
func (s *ImageStorage) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectName, s.bucket, err)
	}
	s.logger.Debug("image uploaded", zap.String("key", info.Key), zap.Int64("size", info.Size))
	return s.baseURL + objectName, nil
}

// Delete removes the object behind imageURL. URLs that do not point into the
// bucket are rejected.
func (s *ImageStorage) Delete(ctx context.Context, imageURL string) error {
	key, ok := objectKey(s.baseURL, imageURL)
	if !ok {
		return fmt.Errorf("%w: image %s is not stored in bucket %s", domain.ErrInvalidInput, imageURL, s.bucket)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}

func objectKey(prefix, imageURL string) (string, bool) {
	if !strings.HasPrefix(imageURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(imageURL, prefix)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	return key, key != ""
}
