package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/blend/internal/domain/subcategory"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

type subcategoryRepository struct {
	db *gorm.DB
}

func NewSubcategoryRepository(db *gorm.DB) subcategory.Repository {
	return &subcategoryRepository{db: db}
}

func (r *subcategoryRepository) Create(ctx context.Context, s *subcategory.Subcategory) error {
	if s.ID == "" {
		s.ID = newID()
	}
	model := toSubcategoryModel(s)
	if err := r.getDB(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "failed to create subcategory")
	}
	s.CreatedAt = model.CreatedAt
	s.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *subcategoryRepository) FindByID(ctx context.Context, id string) (*subcategory.Subcategory, error) {
	var model SubcategoryModel
	if err := r.getDB(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subcategory.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "failed to find subcategory")
	}
	return toSubcategoryEntity(&model), nil
}

func (r *subcategoryRepository) FindAll(ctx context.Context) ([]*subcategory.Subcategory, error) {
	return r.find(ctx, r.getDB(ctx))
}

func (r *subcategoryRepository) FindByCategoryID(ctx context.Context, categoryID string) ([]*subcategory.Subcategory, error) {
	return r.find(ctx, r.getDB(ctx).Where("category_id = ?", categoryID))
}

func (r *subcategoryRepository) find(_ context.Context, db *gorm.DB) ([]*subcategory.Subcategory, error) {
	var models []SubcategoryModel
	if err := db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to list subcategories")
	}
	out := make([]*subcategory.Subcategory, len(models))
	for i := range models {
		out[i] = toSubcategoryEntity(&models[i])
	}
	return out, nil
}

func (r *subcategoryRepository) Update(ctx context.Context, s *subcategory.Subcategory) error {
	model := toSubcategoryModel(s)
	result := r.getDB(ctx).Model(&SubcategoryModel{}).Where("id = ?", s.ID).
		Select("*").Omit("id", "created_at", clause.Associations).
		Updates(model)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to update subcategory")
	}
	if result.RowsAffected == 0 {
		return subcategory.NotFound(s.ID)
	}
	s.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete detaches products from the subcategory before removing it.
func (r *subcategoryRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	if err := db.Model(&ProductModel{}).Where("subcategory_id = ?", id).
		Update("subcategory_id", nil).Error; err != nil {
		return apperrors.Wrap(err, "failed to detach products")
	}

	result := db.Where("id = ?", id).Delete(&SubcategoryModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to delete subcategory")
	}
	if result.RowsAffected == 0 {
		return subcategory.NotFound(id)
	}
	return nil
}

func (r *subcategoryRepository) getDB(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}

func toSubcategoryModel(s *subcategory.Subcategory) *SubcategoryModel {
	return &SubcategoryModel{
		ID:         s.ID,
		Title:      s.Title,
		TitleAm:    s.TitleAm,
		TitleRu:    s.TitleRu,
		CategoryID: s.CategoryID,
		Image:      s.Image,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toSubcategoryEntity(m *SubcategoryModel) *subcategory.Subcategory {
	return &subcategory.Subcategory{
		ID:         m.ID,
		Title:      m.Title,
		TitleAm:    m.TitleAm,
		TitleRu:    m.TitleRu,
		CategoryID: m.CategoryID,
		Image:      m.Image,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
