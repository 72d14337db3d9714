package product

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/category"
	"github.com/xiebiao/blend/internal/domain/media"
	"github.com/xiebiao/blend/internal/domain/product"
)

// UpdateProductUseCase applies a partial update. Removed images are
// deleted from storage after the row is saved.
type UpdateProductUseCase struct {
	productRepo    product.Repository
	categoryRepo   category.Repository
	productService product.Service
	images         media.Store
	log            *zap.Logger
}

func NewUpdateProductUseCase(
	productRepo product.Repository,
	categoryRepo category.Repository,
	productService product.Service,
	images media.Store,
	log *zap.Logger,
) *UpdateProductUseCase {
	return &UpdateProductUseCase{
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
		productService: productService,
		images:         images,
		log:            log,
	}
}

// UpdateProductRequest leaves nil fields unchanged. SubcategoryID set to
// "" clears the subcategory.
type UpdateProductRequest struct {
	ID             string
	Title          *string
	TitleAm        *string
	TitleRu        *string
	Description    *string
	DescriptionAm  *string
	DescriptionRu  *string
	Price          *decimal.Decimal
	Stock          *int
	CategoryID     *string
	SubcategoryID  *string
	IsFeatured     *bool
	IsBestSeller   *bool
	IsBestSelect   *bool
	Disabled       *bool
	Priority       *int
	ImagesToRemove []string
	NewImages      []media.File
}

func (uc *UpdateProductUseCase) Execute(ctx context.Context, req UpdateProductRequest) (*ProductResponse, error) {
	// 1. load
	p, err := uc.productRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	// 2. effective category: the new one if supplied, else the current one
	categoryID := p.CategoryID
	if req.CategoryID != nil && *req.CategoryID != p.CategoryID {
		if _, err := uc.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		categoryID = *req.CategoryID
	}

	// 3. subcategory consistency. A kept subcategory is rechecked when the
	// category moves.
	subcategoryID := p.SubcategoryID
	if req.SubcategoryID != nil {
		subcategoryID = nil
		if *req.SubcategoryID != "" {
			id := *req.SubcategoryID
			subcategoryID = &id
		}
	}
	if subcategoryID != nil && (req.SubcategoryID != nil || categoryID != p.CategoryID) {
		if err := uc.productService.CheckSubcategory(ctx, categoryID, *subcategoryID); err != nil {
			return nil, err
		}
	}

	// 4. apply fields
	applyString(&p.Title, req.Title)
	applyString(&p.TitleAm, req.TitleAm)
	applyString(&p.TitleRu, req.TitleRu)
	applyString(&p.Description, req.Description)
	applyString(&p.DescriptionAm, req.DescriptionAm)
	applyString(&p.DescriptionRu, req.DescriptionRu)
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	applyBool(&p.IsFeatured, req.IsFeatured)
	applyBool(&p.IsBestSeller, req.IsBestSeller)
	applyBool(&p.IsBestSelect, req.IsBestSelect)
	applyBool(&p.Disabled, req.Disabled)
	if req.Priority != nil {
		p.Priority = *req.Priority
	}
	p.CategoryID = categoryID
	p.SubcategoryID = subcategoryID

	if err := p.Validate(); err != nil {
		return nil, err
	}

	// 5. images: drop the removed ones, append the uploads
	removed := p.RemoveImages(req.ImagesToRemove)
	added, err := media.SaveAll(ctx, uc.images, uc.log, media.EntityProducts, req.NewImages)
	if err != nil {
		return nil, err
	}
	p.AddImages(added...)

	// 6. persist, then clean up storage
	if err := uc.productRepo.Update(ctx, p); err != nil {
		media.RemoveQuietly(ctx, uc.images, uc.log, added...)
		return nil, err
	}
	media.RemoveQuietly(ctx, uc.images, uc.log, removed...)

	return ToResponse(p), nil
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func applyBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
