package category

import (
	"context"

	"github.com/xiebiao/blend/internal/domain/category"
)

type GetCategoryUseCase struct {
	categoryRepo category.Repository
}

func NewGetCategoryUseCase(categoryRepo category.Repository) *GetCategoryUseCase {
	return &GetCategoryUseCase{categoryRepo: categoryRepo}
}

func (uc *GetCategoryUseCase) Execute(ctx context.Context, id string) (*CategoryResponse, error) {
	c, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToResponse(c), nil
}

// ListCategoriesUseCase returns every category, newest first.
type ListCategoriesUseCase struct {
	categoryRepo category.Repository
}

func NewListCategoriesUseCase(categoryRepo category.Repository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]*CategoryResponse, error) {
	list, err := uc.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToResponses(list), nil
}
