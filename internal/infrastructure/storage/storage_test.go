package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/media"
	"github.com/xiebiao/blend/internal/infrastructure/imaging"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.NRGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newLocalStore(t *testing.T, optimize bool) (*ImageStore, string) {
	t.Helper()
	root := t.TempDir()
	backend, err := NewLocalBackend(root, "/uploads")
	require.NoError(t, err)

	var opt *imaging.Optimizer
	if optimize {
		opt = imaging.NewOptimizer()
	}
	return NewImageStore(backend, opt, zap.NewNop()), root
}

func TestLocalSaveAndDelete(t *testing.T) {
	store, root := newLocalStore(t, true)
	ctx := context.Background()

	url, err := store.Save(ctx, media.EntityCategories, media.File{
		Filename:    "Photo.PNG",
		ContentType: "image/png",
		Data:        pngBytes(t, 1000, 500),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/categories/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	onDisk := filepath.Join(root, strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 600, cfg.Width, "categories use the medium preset")

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	// second delete and foreign urls are no-ops
	assert.NoError(t, store.Delete(ctx, url))
	assert.NoError(t, store.Delete(ctx, "https://cdn.example.com/a.jpg"))
	assert.NoError(t, store.Delete(ctx, "/uploads/../etc/passwd"))
}

func TestSaveFallsBackToOriginalBytes(t *testing.T) {
	store, root := newLocalStore(t, true)

	raw := []byte("GIF89a-not-really")
	url, err := store.Save(context.Background(), media.EntityBanners, media.File{
		Filename:    "banner.gif",
		ContentType: "image/gif",
		Data:        raw,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".gif"))

	data, err := os.ReadFile(filepath.Join(root, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, raw, data)
}

func TestSaveWithoutOptimizer(t *testing.T) {
	store, root := newLocalStore(t, false)

	raw := pngBytes(t, 2000, 10)
	url, err := store.Save(context.Background(), media.EntityProducts, media.File{Filename: "p.png", Data: raw})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, raw, data)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "products/a.jpg", objectKey("blend", "https://storage.googleapis.com/blend/products/a.jpg"))
	assert.Equal(t, "products/a.jpg", objectKey("blend", "products/a.jpg"))
	assert.Equal(t, "", objectKey("blend", "https://storage.googleapis.com/other/products/a.jpg"))
	assert.Equal(t, "", objectKey("blend", "/uploads/products/a.jpg"))
	assert.Equal(t, "https://storage.googleapis.com/blend/banners/b.png", publicURL("blend", "banners/b.png"))
}
