package product

import (
	"context"

	"github.com/xiebiao/blend/internal/domain/product"
)

// SuggestionLimit caps the random same-category products on a detail page.
const SuggestionLimit = 10

type GetProductUseCase struct {
	productRepo product.Repository
}

func NewGetProductUseCase(productRepo product.Repository) *GetProductUseCase {
	return &GetProductUseCase{productRepo: productRepo}
}

type ProductDetailResponse struct {
	Product     *ProductResponse   `json:"product"`
	Suggestions []*ProductResponse `json:"suggestions"`
}

// Execute loads the product plus up to SuggestionLimit enabled products of
// the same category in random order.
func (uc *GetProductUseCase) Execute(ctx context.Context, id string) (*ProductDetailResponse, error) {
	p, err := uc.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	suggestions, err := uc.productRepo.RandomByCategory(ctx, p.CategoryID, p.ID, SuggestionLimit)
	if err != nil {
		return nil, err
	}

	return &ProductDetailResponse{
		Product:     ToResponse(p),
		Suggestions: ToResponses(suggestions),
	}, nil
}
