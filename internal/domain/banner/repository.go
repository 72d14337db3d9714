package banner

import "context"

type Repository interface {
	Create(ctx context.Context, b *Banner) error

	FindByID(ctx context.Context, id string) (*Banner, error)

	// FindAll orders by priority ascending, then newest first. activeOnly
	// restricts the result to banners with IsActive set.
	FindAll(ctx context.Context, activeOnly bool) ([]*Banner, error)

	Update(ctx context.Context, b *Banner) error

	Delete(ctx context.Context, id string) error
}
