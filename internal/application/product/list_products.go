package product

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/blend/internal/domain/category"
	"github.com/xiebiao/blend/internal/domain/product"
	"github.com/xiebiao/blend/internal/domain/query"
)

// ListProductsUseCase pages through the whole catalog, disabled products
// included, in the default order.
type ListProductsUseCase struct {
	productRepo product.Repository
}

func NewListProductsUseCase(productRepo product.Repository) *ListProductsUseCase {
	return &ListProductsUseCase{productRepo: productRepo}
}

type ListProductsRequest struct {
	Page  int
	Limit int
}

func (uc *ListProductsUseCase) Execute(ctx context.Context, req ListProductsRequest) (*PageResponse, error) {
	page := query.NewPage(req.Page, req.Limit)
	list, total, err := uc.productRepo.Find(ctx, query.New().Paginate(page))
	if err != nil {
		return nil, err
	}
	return &PageResponse{Items: ToResponses(list), Total: total, Page: page.Number, Limit: page.Limit}, nil
}

// ListByCategoryUseCase is the storefront category listing. Disabled
// products never appear.
type ListByCategoryUseCase struct {
	productRepo  product.Repository
	categoryRepo category.Repository
}

func NewListByCategoryUseCase(productRepo product.Repository, categoryRepo category.Repository) *ListByCategoryUseCase {
	return &ListByCategoryUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

type ListByCategoryRequest struct {
	CategoryID    string
	Page          int
	Limit         int
	SubcategoryID string
	Search        string
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	SortBy        query.SortKey
}

func (uc *ListByCategoryUseCase) Execute(ctx context.Context, req ListByCategoryRequest) (*PageResponse, error) {
	// 1. the category must exist
	if _, err := uc.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	// 2. compose the query
	page := query.NewPage(req.Page, req.Limit)
	spec := query.New().
		Where(query.FieldCategoryID, query.OpEq, req.CategoryID).
		Where(query.FieldDisabled, query.OpEq, false).
		WhereIf(req.SubcategoryID != "", query.FieldSubcategoryID, query.OpEq, req.SubcategoryID).
		WhereIf(req.Search != "", query.FieldTitle, query.OpContains, req.Search).
		WhereIf(req.MinPrice != nil, query.FieldPrice, query.OpGte, decimalValue(req.MinPrice)).
		WhereIf(req.MaxPrice != nil, query.FieldPrice, query.OpLte, decimalValue(req.MaxPrice)).
		SortBy(req.SortBy).
		Paginate(page)
	if spec.Sort == "" {
		spec.SortBy(query.SortDefault)
	}

	// 3. run
	list, total, err := uc.productRepo.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	return &PageResponse{Items: ToResponses(list), Total: total, Page: page.Number, Limit: page.Limit}, nil
}

func decimalValue(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return *d
}
