package category

import "context"

// Repository is implemented by the persistence layer.
type Repository interface {
	// Create returns SlugTaken when the slug is already used.
	Create(ctx context.Context, c *Category) error

	// FindByID returns NotFound(id) when the category does not exist.
	FindByID(ctx context.Context, id string) (*Category, error)

	// FindBySlug returns NotFound when no category has the slug.
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// FindAll returns every category, newest first.
	FindAll(ctx context.Context) ([]*Category, error)

	Update(ctx context.Context, c *Category) error

	Delete(ctx context.Context, id string) error
}
