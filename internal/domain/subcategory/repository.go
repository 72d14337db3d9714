package subcategory

import "context"

type Repository interface {
	Create(ctx context.Context, s *Subcategory) error

	// FindByID returns NotFound(id) when the subcategory does not exist.
	FindByID(ctx context.Context, id string) (*Subcategory, error)

	FindAll(ctx context.Context) ([]*Subcategory, error)

	FindByCategoryID(ctx context.Context, categoryID string) ([]*Subcategory, error)

	Update(ctx context.Context, s *Subcategory) error

	Delete(ctx context.Context, id string) error
}
