package product

import (
	"context"

	"github.com/xiebiao/blend/internal/domain/subcategory"
)

// Service holds the product rules that need more than one aggregate:
// subcategory consistency and the stock ledger.
type Service interface {
	// CheckSubcategory verifies subcategoryID exists and belongs to categoryID.
	CheckSubcategory(ctx context.Context, categoryID, subcategoryID string) error

	// CheckStock loads the product and verifies quantity units are available.
	// Nothing is reserved.
	CheckStock(ctx context.Context, productID string, quantity int) (*Product, error)

	// ReduceStock decrements stock by quantity, failing without side effects
	// when it would go negative.
	ReduceStock(ctx context.Context, productID string, quantity int) error
}

type service struct {
	repo            Repository
	subcategoryRepo subcategory.Repository
}

// NewService creates the product domain service.
func NewService(repo Repository, subcategoryRepo subcategory.Repository) Service {
	return &service{
		repo:            repo,
		subcategoryRepo: subcategoryRepo,
	}
}

func (s *service) CheckSubcategory(ctx context.Context, categoryID, subcategoryID string) error {
	sub, err := s.subcategoryRepo.FindByID(ctx, subcategoryID)
	if err != nil {
		return err
	}
	if sub.CategoryID != categoryID {
		return SubcategoryMismatch(subcategoryID, categoryID)
	}
	return nil
}

func (s *service) CheckStock(ctx context.Context, productID string, quantity int) (*Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.HasStock(quantity) {
		return nil, InsufficientStock(p, quantity)
	}
	return p, nil
}

func (s *service) ReduceStock(ctx context.Context, productID string, quantity int) error {
	// 1. load the current ledger entry
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	// 2. domain check, names the product in the error
	if err := p.ReduceStock(quantity); err != nil {
		return err
	}

	// 3. persist with a conditional update so a concurrent decrement can
	// never push the row below zero
	return s.repo.DecrementStock(ctx, productID, quantity)
}
