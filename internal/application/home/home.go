// Package home serves the storefront landing sections.
package home

import (
	"context"

	categoryapp "github.com/xiebiao/blend/internal/application/category"
	productapp "github.com/xiebiao/blend/internal/application/product"
	"github.com/xiebiao/blend/internal/domain/category"
	"github.com/xiebiao/blend/internal/domain/product"
	"github.com/xiebiao/blend/internal/domain/query"
)

// Section names a curated product shelf.
type Section string

const (
	SectionSlider     Section = "slider"
	SectionBestSeller Section = "best-seller"
	SectionBestSelect Section = "best-select"
)

// spec returns the unpaginated query for a shelf, or nil for an unknown one.
func (s Section) spec() *query.Spec {
	switch s {
	case SectionSlider:
		return query.New().Where(query.FieldIsFeatured, query.OpEq, true)
	case SectionBestSeller:
		return query.New().
			Where(query.FieldIsBestSeller, query.OpEq, true).
			Where(query.FieldDisabled, query.OpEq, false)
	case SectionBestSelect:
		return query.New().Where(query.FieldIsBestSelect, query.OpEq, true)
	}
	return nil
}

type HomeUseCase struct {
	productRepo  product.Repository
	categoryRepo category.Repository
}

func NewHomeUseCase(productRepo product.Repository, categoryRepo category.Repository) *HomeUseCase {
	return &HomeUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Products lists a shelf in priority order, newest first within a priority.
func (uc *HomeUseCase) Products(ctx context.Context, section Section) ([]*productapp.ProductResponse, error) {
	spec := section.spec()
	if spec == nil {
		return []*productapp.ProductResponse{}, nil
	}
	list, _, err := uc.productRepo.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	return productapp.ToResponses(list), nil
}

func (uc *HomeUseCase) Categories(ctx context.Context) ([]*categoryapp.CategoryResponse, error) {
	list, err := uc.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return categoryapp.ToResponses(list), nil
}
