package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	saved   []string
	deleted []string
	failOn  string
}

func (s *fakeStore) Save(_ context.Context, entity string, f File) (string, error) {
	if f.Filename == s.failOn {
		return "", errors.New("disk full")
	}
	url := "/uploads/" + entity + "/" + f.Filename
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *fakeStore) Delete(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	if url == "/uploads/products/broken.jpg" {
		return errors.New("permission denied")
	}
	return nil
}

func TestPresetFor(t *testing.T) {
	assert.Equal(t, PresetMedium, PresetFor(EntityCategories))
	assert.Equal(t, PresetLarge, PresetFor(EntityProducts))
	assert.Equal(t, PresetLarge, PresetFor(EntityBanners))
}

func TestSaveAll(t *testing.T) {
	store := &fakeStore{}
	urls, err := SaveAll(context.Background(), store, zap.NewNop(), EntityProducts,
		[]File{{Filename: "a.jpg"}, {Filename: "b.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/products/a.jpg", "/uploads/products/b.jpg"}, urls)
}

func TestSaveAllRollsBack(t *testing.T) {
	store := &fakeStore{failOn: "c.jpg"}
	_, err := SaveAll(context.Background(), store, zap.NewNop(), EntityProducts,
		[]File{{Filename: "a.jpg"}, {Filename: "b.jpg"}, {Filename: "c.jpg"}})
	require.Error(t, err)
	assert.Equal(t, []string{"/uploads/products/a.jpg", "/uploads/products/b.jpg"}, store.deleted)
}

func TestRemoveQuietlyContinuesAfterFailure(t *testing.T) {
	store := &fakeStore{}
	RemoveQuietly(context.Background(), store, zap.NewNop(),
		"/uploads/products/broken.jpg", "", "/uploads/products/ok.jpg")
	assert.Equal(t, []string{"/uploads/products/broken.jpg", "/uploads/products/ok.jpg"}, store.deleted)
}
