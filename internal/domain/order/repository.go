package order

import (
	"context"

	"github.com/xiebiao/blend/internal/domain/query"
)

// Repository persists orders together with their items.
type Repository interface {
	// Create inserts the order and its items and fills in the generated ids.
	Create(ctx context.Context, o *Order) error

	// FindByID loads the order with its items, NotFound(id) when absent.
	FindByID(ctx context.Context, id uint) (*Order, error)

	// List returns a page of orders, newest first. An empty status matches all.
	List(ctx context.Context, status Status, page query.Page) ([]*Order, int64, error)

	// ListByUserID returns every order placed by the user, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*Order, error)

	// Statistics aggregates order counts and revenue per status and per
	// UTC month in the database.
	Statistics(ctx context.Context) (*Statistics, error)

	UpdateStatus(ctx context.Context, id uint, status Status) error

	// Delete removes the order; its items go with it.
	Delete(ctx context.Context, id uint) error
}
