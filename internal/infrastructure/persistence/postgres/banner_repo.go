package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/blend/internal/domain/banner"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

type bannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) banner.Repository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Create(ctx context.Context, b *banner.Banner) error {
	if b.ID == "" {
		b.ID = newID()
	}
	model := toBannerModel(b)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "failed to create banner")
	}
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bannerRepository) FindByID(ctx context.Context, id string) (*banner.Banner, error) {
	var m BannerModel
	if err := r.getDB(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, banner.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "failed to find banner")
	}
	return toBannerEntity(&m), nil
}

// FindAll orders lowest priority first, the opposite of products.
func (r *bannerRepository) FindAll(ctx context.Context, activeOnly bool) ([]*banner.Banner, error) {
	var models []BannerModel
	db := r.getDB(ctx)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	if err := db.Order("priority ASC").Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to list banners")
	}
	out := make([]*banner.Banner, len(models))
	for i := range models {
		out[i] = toBannerEntity(&models[i])
	}
	return out, nil
}

func (r *bannerRepository) Update(ctx context.Context, b *banner.Banner) error {
	model := toBannerModel(b)
	result := r.getDB(ctx).Model(&BannerModel{}).Where("id = ?", b.ID).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to update banner")
	}
	if result.RowsAffected == 0 {
		return banner.NotFound(b.ID)
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Where("id = ?", id).Delete(&BannerModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to delete banner")
	}
	if result.RowsAffected == 0 {
		return banner.NotFound(id)
	}
	return nil
}

func (r *bannerRepository) getDB(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}

func toBannerModel(b *banner.Banner) *BannerModel {
	return &BannerModel{
		ID:        b.ID,
		Image:     b.Image,
		URL:       b.URL,
		Text:      b.Text,
		TextAm:    b.TextAm,
		TextRu:    b.TextRu,
		IsActive:  b.IsActive,
		Priority:  b.Priority,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toBannerEntity(m *BannerModel) *banner.Banner {
	return &banner.Banner{
		ID:        m.ID,
		Image:     m.Image,
		URL:       m.URL,
		Text:      m.Text,
		TextAm:    m.TextAm,
		TextRu:    m.TextRu,
		IsActive:  m.IsActive,
		Priority:  m.Priority,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
