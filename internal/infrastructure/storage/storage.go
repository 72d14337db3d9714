// Package storage keeps optimized uploads on the local disk or in a Google
// Cloud Storage bucket.
package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/media"
	"github.com/xiebiao/blend/internal/infrastructure/config"
	"github.com/xiebiao/blend/internal/infrastructure/imaging"
	apperrors "github.com/xiebiao/blend/pkg/errors"
	"github.com/xiebiao/blend/pkg/metrics"
)

// Backend writes and removes objects addressed by "<entity>/<file>" keys.
type Backend interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
	Remove(ctx context.Context, url string) error
	Close() error
}

// ImageStore implements media.Store on top of a Backend.
type ImageStore struct {
	backend   Backend
	optimizer *imaging.Optimizer
	log       *zap.Logger
}

// NewImageStore wraps backend. A nil optimizer stores the uploaded bytes as is.
func NewImageStore(backend Backend, optimizer *imaging.Optimizer, log *zap.Logger) *ImageStore {
	return &ImageStore{
		backend:   backend,
		optimizer: optimizer,
		log:       log,
	}
}

// New builds the store selected by cfg.Storage.Driver.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*ImageStore, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Storage.Driver {
	case "gcs":
		backend, err = NewGCSBackend(ctx, cfg.Storage, log)
	default:
		backend, err = NewLocalBackend(cfg.Storage.LocalDir, cfg.Storage.PublicPath)
	}
	if err != nil {
		return nil, err
	}

	var optimizer *imaging.Optimizer
	if cfg.Image.Optimize {
		optimizer = imaging.NewOptimizer()
	}

	log.Info("image storage ready", zap.String("driver", cfg.Storage.Driver), zap.Bool("optimize", cfg.Image.Optimize))
	return NewImageStore(backend, optimizer, log), nil
}

func (s *ImageStore) Save(ctx context.Context, entity string, f media.File) (string, error) {
	data, ext, contentType := f.Data, extension(f.Filename), f.ContentType

	if s.optimizer != nil {
		res, err := s.optimizer.Optimize(f.Data, media.PresetFor(entity))
		if err != nil {
			// keep the original bytes
			s.log.Warn("image optimization failed, storing original",
				zap.String("entity", entity),
				zap.String("filename", f.Filename),
				zap.Error(err),
			)
		} else {
			data, ext, contentType = res.Data, res.Ext, res.ContentType
		}
	}

	key := path.Join(entity, uuid.NewString()+ext)
	url, err := s.backend.Put(ctx, key, data, contentType)
	if err != nil {
		metrics.IncCounterVec(metrics.ImageUploadsTotal, entity, "error")
		return "", &apperrors.AppError{
			Code:    apperrors.ErrCodeStorageError,
			Message: "Failed to store image",
			Err:     err,
		}
	}

	metrics.IncCounterVec(metrics.ImageUploadsTotal, entity, "success")
	s.log.Debug("image stored", zap.String("url", url), zap.Int("bytes", len(data)))
	return url, nil
}

func (s *ImageStore) Delete(ctx context.Context, url string) error {
	if err := s.backend.Remove(ctx, url); err != nil {
		return fmt.Errorf("remove %s: %w", url, err)
	}
	return nil
}

func (s *ImageStore) Close() error {
	return s.backend.Close()
}

func extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	}
	return ""
}
