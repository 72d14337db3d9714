package product

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/category"
	"github.com/xiebiao/blend/internal/domain/media"
	"github.com/xiebiao/blend/internal/domain/product"
	"github.com/xiebiao/blend/pkg/saga"
)

// CreateProductUseCase adds a product to the catalog with its images.
type CreateProductUseCase struct {
	productRepo    product.Repository
	categoryRepo   category.Repository
	productService product.Service
	images         media.Store
	log            *zap.Logger
}

func NewCreateProductUseCase(
	productRepo product.Repository,
	categoryRepo category.Repository,
	productService product.Service,
	images media.Store,
	log *zap.Logger,
) *CreateProductUseCase {
	return &CreateProductUseCase{
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
		productService: productService,
		images:         images,
		log:            log,
	}
}

type CreateProductRequest struct {
	Title         string
	TitleAm       string
	TitleRu       string
	Description   string
	DescriptionAm string
	DescriptionRu string
	Price         decimal.Decimal
	Stock         int
	CategoryID    string
	SubcategoryID string // empty means none
	IsFeatured    bool
	IsBestSeller  bool
	IsBestSelect  bool
	Disabled      bool
	Priority      int
	Images        []media.File
}

func (uc *CreateProductUseCase) Execute(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	// 1. category must exist
	if _, err := uc.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	// 2. subcategory must belong to it
	var subcategoryID *string
	if req.SubcategoryID != "" {
		if err := uc.productService.CheckSubcategory(ctx, req.CategoryID, req.SubcategoryID); err != nil {
			return nil, err
		}
		subcategoryID = &req.SubcategoryID
	}

	// 3. field invariants
	p, err := product.NewProduct(product.Product{
		Title:         req.Title,
		TitleAm:       req.TitleAm,
		TitleRu:       req.TitleRu,
		Description:   req.Description,
		DescriptionAm: req.DescriptionAm,
		DescriptionRu: req.DescriptionRu,
		Price:         req.Price,
		Stock:         req.Stock,
		CategoryID:    req.CategoryID,
		SubcategoryID: subcategoryID,
		IsFeatured:    req.IsFeatured,
		IsBestSeller:  req.IsBestSeller,
		IsBestSelect:  req.IsBestSelect,
		Disabled:      req.Disabled,
		Priority:      req.Priority,
	})
	if err != nil {
		return nil, err
	}

	// 4. images, only once everything else is valid, then the row; a
	// failed insert removes the uploaded files
	var urls []string
	err = saga.New("create_product", 0, uc.log).
		AddStep("store images", func(ctx context.Context) error {
			saved, err := media.SaveAll(ctx, uc.images, uc.log, media.EntityProducts, req.Images)
			if err != nil {
				return err
			}
			urls = saved
			p.AddImages(urls...)
			return nil
		}, func(ctx context.Context) error {
			media.RemoveQuietly(ctx, uc.images, uc.log, urls...)
			return nil
		}).
		AddStep("insert product", func(ctx context.Context) error {
			return uc.productRepo.Create(ctx, p)
		}, nil).
		Execute(ctx)
	if err != nil {
		return nil, err
	}

	uc.log.Info("product created", zap.String("product_id", p.ID), zap.Int("images", len(urls)))
	return ToResponse(p), nil
}
