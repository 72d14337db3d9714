package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalBackend writes under root and serves files below publicPath, so a
// key "products/x.jpg" becomes "/uploads/products/x.jpg".
type LocalBackend struct {
	root       string
	publicPath string
}

func NewLocalBackend(root, publicPath string) (*LocalBackend, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalBackend{
		root:       root,
		publicPath: "/" + strings.Trim(publicPath, "/"),
	}, nil
}

func (b *LocalBackend) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	dst := filepath.Join(b.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", err
	}
	return path.Join(b.publicPath, key), nil
}

// Remove deletes the file behind a URL issued by Put. URLs outside the
// public path are ignored.
func (b *LocalBackend) Remove(_ context.Context, url string) error {
	key, ok := b.keyOf(url)
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(b.root, filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (b *LocalBackend) Close() error { return nil }

func (b *LocalBackend) keyOf(url string) (string, bool) {
	prefix := b.publicPath + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := path.Clean(strings.TrimPrefix(url, prefix))
	if key == "." || strings.HasPrefix(key, "..") {
		return "", false
	}
	return key, true
}
