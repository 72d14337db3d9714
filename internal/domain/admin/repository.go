package admin

import "context"

type Repository interface {
	Create(ctx context.Context, a *Admin) error

	// FindByEmail returns ErrNotFound when no admin has the email.
	FindByEmail(ctx context.Context, email string) (*Admin, error)

	FindByID(ctx context.Context, id string) (*Admin, error)
}
