// Package media describes uploaded images and the store that keeps them.
package media

import (
	"context"

	"go.uber.org/zap"
)

// Entity folders images are stored under.
const (
	EntityProducts   = "products"
	EntityCategories = "categories"
	EntityBanners    = "banners"
)

// Preset names a maximum bounding box for resizing.
type Preset string

const (
	PresetThumbnail Preset = "thumbnail"
	PresetSmall     Preset = "small"
	PresetMedium    Preset = "medium"
	PresetLarge     Preset = "large"
	PresetXLarge    Preset = "xlarge"
)

// PresetFor returns the resize preset used for an entity folder.
func PresetFor(entity string) Preset {
	if entity == EntityCategories {
		return PresetMedium
	}
	return PresetLarge
}

// File is one uploaded image as received from the client.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Store optimizes and persists images and returns the public URL recorded
// on the owning entity.
type Store interface {
	Save(ctx context.Context, entity string, f File) (string, error)

	// Delete removes the image behind url. A missing object is not an error.
	Delete(ctx context.Context, url string) error
}

// SaveAll stores files in order. On failure the images saved so far are
// removed again.
func SaveAll(ctx context.Context, store Store, log *zap.Logger, entity string, files []File) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := store.Save(ctx, entity, f)
		if err != nil {
			RemoveQuietly(ctx, store, log, urls...)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// RemoveQuietly deletes every url, logging failures instead of returning them.
func RemoveQuietly(ctx context.Context, store Store, log *zap.Logger, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := store.Delete(ctx, url); err != nil {
			log.Warn("failed to delete image", zap.String("url", url), zap.Error(err))
		}
	}
}
