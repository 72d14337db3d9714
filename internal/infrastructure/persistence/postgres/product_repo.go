package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/blend/internal/domain/product"
	"github.com/xiebiao/blend/internal/domain/query"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	if p.ID == "" {
		p.ID = newID()
	}
	model := toProductModel(p)

	if err := r.getDB(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "failed to create product")
	}

	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var model ProductModel
	err := r.getDB(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "failed to find product")
	}
	return toProductEntity(&model), nil
}

// Update saves every column.
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)
	result := r.getDB(ctx).Model(&ProductModel{}).Where("id = ?", p.ID).
		Select("*").Omit("id", "created_at", clause.Associations).
		Updates(model)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return product.NotFound(p.ID)
	}
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Where("id = ?", id).Delete(&ProductModel{})
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return apperrors.Conflict("Product is referenced by existing orders and cannot be deleted")
		}
		return apperrors.Wrap(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return product.NotFound(id)
	}
	return nil
}

// Find runs spec: WHERE, COUNT, ORDER, LIMIT/OFFSET.
func (r *productRepository) Find(ctx context.Context, spec *query.Spec) ([]*product.Product, int64, error) {
	var (
		models []ProductModel
		total  int64
	)

	// 1. filters
	db, err := applyPredicates(r.getDB(ctx).Model(&ProductModel{}), spec.Predicates, productColumns)
	if err != nil {
		return nil, 0, err
	}

	// 2. total ignoring the window
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count products")
	}

	// 3. order and window
	db = applyPage(applySort(db, spec.Sort), spec.Page)
	if err := db.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list products")
	}

	return toProductEntities(models), total, nil
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	if err := r.getDB(ctx).Model(&ProductModel{}).Where("category_id = ?", categoryID).Count(&n).Error; err != nil {
		return 0, apperrors.Wrap(err, "failed to count products")
	}
	return n, nil
}

// RandomByCategory relies on RANDOM(), available in Postgres and SQLite.
func (r *productRepository) RandomByCategory(ctx context.Context, categoryID, excludeID string, limit int) ([]*product.Product, error) {
	var models []ProductModel
	err := r.getDB(ctx).
		Where("category_id = ?", categoryID).
		Where("id <> ?", excludeID).
		Where("disabled = ?", false).
		Order("RANDOM()").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load suggestions")
	}
	return toProductEntities(models), nil
}

// DecrementStock is a single conditional UPDATE:
// UPDATE products SET stock = stock - q WHERE id = ? AND stock >= q
func (r *productRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return product.ErrInvalidQuantity
	}

	db := r.getDB(ctx)
	result := db.Model(&ProductModel{}).
		Where("id = ?", id).
		Where("stock >= ?", quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to update stock")
	}

	if result.RowsAffected == 0 {
		// missing row or not enough stock, re-read to tell which
		p, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return product.CannotReduceStock(p, quantity)
	}
	return nil
}

func (r *productRepository) getDB(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}

func toProductModel(p *product.Product) *ProductModel {
	images := imageList(p.ImageURLs)
	if images == nil {
		images = imageList{}
	}
	return &ProductModel{
		ID:            p.ID,
		Title:         p.Title,
		TitleAm:       p.TitleAm,
		TitleRu:       p.TitleRu,
		Description:   p.Description,
		DescriptionAm: p.DescriptionAm,
		DescriptionRu: p.DescriptionRu,
		Price:         p.Price,
		Stock:         p.Stock,
		CategoryID:    p.CategoryID,
		SubcategoryID: p.SubcategoryID,
		ImageURLs:     images,
		IsFeatured:    p.IsFeatured,
		IsBestSeller:  p.IsBestSeller,
		IsBestSelect:  p.IsBestSelect,
		Disabled:      p.Disabled,
		Priority:      p.Priority,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductEntity(m *ProductModel) *product.Product {
	images := []string(m.ImageURLs)
	if images == nil {
		images = []string{}
	}
	return &product.Product{
		ID:            m.ID,
		Title:         m.Title,
		TitleAm:       m.TitleAm,
		TitleRu:       m.TitleRu,
		Description:   m.Description,
		DescriptionAm: m.DescriptionAm,
		DescriptionRu: m.DescriptionRu,
		Price:         m.Price,
		Stock:         m.Stock,
		CategoryID:    m.CategoryID,
		SubcategoryID: m.SubcategoryID,
		ImageURLs:     images,
		IsFeatured:    m.IsFeatured,
		IsBestSeller:  m.IsBestSeller,
		IsBestSelect:  m.IsBestSelect,
		Disabled:      m.Disabled,
		Priority:      m.Priority,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toProductEntities(models []ProductModel) []*product.Product {
	out := make([]*product.Product, len(models))
	for i := range models {
		out[i] = toProductEntity(&models[i])
	}
	return out
}
