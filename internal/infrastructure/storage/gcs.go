package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/xiebiao/blend/internal/infrastructure/config"
)

const (
	gcsPublicHost = "https://storage.googleapis.com"
	cacheControl  = "public, max-age=31536000"
)

// GCSBackend stores objects in a bucket and returns their public URL.
// The bucket is expected to grant public read at the bucket level.
type GCSBackend struct {
	client *gcs.Client
	bucket string
	log    *zap.Logger
}

func NewGCSBackend(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (*GCSBackend, error) {
	var opts []option.ClientOption
	if cfg.KeyFilename != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.KeyFilename))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	log.Info("google cloud storage initialized",
		zap.String("project", cfg.ProjectID),
		zap.String("bucket", cfg.BucketName),
	)
	return &GCSBackend{
		client: client,
		bucket: cfg.BucketName,
		log:    log,
	}, nil
}

func (b *GCSBackend) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	w := b.client.Bucket(b.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = cacheControl

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", key, err)
	}
	return publicURL(b.bucket, key), nil
}

func (b *GCSBackend) Remove(ctx context.Context, url string) error {
	key := objectKey(b.bucket, url)
	if key == "" {
		return nil
	}
	err := b.client.Bucket(b.bucket).Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		b.log.Warn("object not found in bucket", zap.String("key", key))
		return nil
	}
	return err
}

func (b *GCSBackend) Close() error {
	return b.client.Close()
}

func publicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", gcsPublicHost, bucket, key)
}

// objectKey accepts a public URL of the bucket or a bare key. URLs of other
// hosts or buckets yield "".
func objectKey(bucket, url string) string {
	prefix := publicURL(bucket, "")
	if strings.HasPrefix(url, prefix) {
		return strings.TrimPrefix(url, prefix)
	}
	if strings.Contains(url, "://") || strings.HasPrefix(url, "/") {
		return ""
	}
	return url
}
