package product

import (
	"context"

	"github.com/xiebiao/blend/internal/domain/query"
)

// Repository is implemented by the persistence layer.
type Repository interface {
	Create(ctx context.Context, p *Product) error

	// FindByID returns NotFound(id) when the product does not exist.
	FindByID(ctx context.Context, id string) (*Product, error)

	Update(ctx context.Context, p *Product) error

	Delete(ctx context.Context, id string) error

	// Find applies spec and returns the matching page plus the total number
	// of matching rows ignoring the page window.
	Find(ctx context.Context, spec *query.Spec) ([]*Product, int64, error)

	// CountByCategory counts products referencing the category.
	CountByCategory(ctx context.Context, categoryID string) (int64, error)

	// RandomByCategory returns up to limit enabled products of the category in
	// random order, excluding excludeID.
	RandomByCategory(ctx context.Context, categoryID, excludeID string, limit int) ([]*Product, error)

	// DecrementStock atomically subtracts quantity when enough stock is left.
	// Stock is left untouched on failure.
	DecrementStock(ctx context.Context, id string, quantity int) error
}
