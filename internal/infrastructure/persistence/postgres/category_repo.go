package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/blend/internal/domain/category"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	if c.ID == "" {
		c.ID = newID()
	}
	model := toCategoryModel(c)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return category.SlugTaken(c.Slug)
		}
		return apperrors.Wrap(err, "failed to create category")
	}
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*category.Category, error) {
	var model CategoryModel
	if err := r.getDB(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "failed to find category")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*category.Category, error) {
	var model CategoryModel
	if err := r.getDB(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Newf(apperrors.ErrCodeNotFound, "Category with slug %s not found", slug)
		}
		return nil, apperrors.Wrap(err, "failed to find category")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]*category.Category, error) {
	var models []CategoryModel
	if err := r.getDB(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to list categories")
	}
	out := make([]*category.Category, len(models))
	for i := range models {
		out[i] = toCategoryEntity(&models[i])
	}
	return out, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	model := toCategoryModel(c)
	result := r.getDB(ctx).Model(&CategoryModel{}).Where("id = ?", c.ID).
		Select("*").Omit("id", "created_at", clause.Associations).
		Updates(model)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return category.SlugTaken(c.Slug)
		}
		return apperrors.Wrap(result.Error, "failed to update category")
	}
	if result.RowsAffected == 0 {
		return category.NotFound(c.ID)
	}
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)

	// subcategories go with the category; SQLite does not cascade by default
	if err := db.Where("category_id = ?", id).Delete(&SubcategoryModel{}).Error; err != nil {
		return apperrors.Wrap(err, "failed to delete subcategories")
	}

	result := db.Where("id = ?", id).Delete(&CategoryModel{})
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return apperrors.New(apperrors.ErrCodeCategoryInUse, "Category is still referenced by products")
		}
		return apperrors.Wrap(result.Error, "failed to delete category")
	}
	if result.RowsAffected == 0 {
		return category.NotFound(id)
	}
	return nil
}

func (r *categoryRepository) getDB(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}

func toCategoryModel(c *category.Category) *CategoryModel {
	return &CategoryModel{
		ID:        c.ID,
		Title:     c.Title,
		TitleAm:   c.TitleAm,
		TitleRu:   c.TitleRu,
		Slug:      c.Slug,
		Image:     c.Image,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCategoryEntity(m *CategoryModel) *category.Category {
	return &category.Category{
		ID:        m.ID,
		Title:     m.Title,
		TitleAm:   m.TitleAm,
		TitleRu:   m.TitleRu,
		Slug:      m.Slug,
		Image:     m.Image,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
