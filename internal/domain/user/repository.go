package user

import (
	"context"

	"github.com/xiebiao/blend/internal/domain/query"
)

// Repository is implemented by the persistence layer. Lookups that find
// nothing return ErrNotFound.
type Repository interface {
	// Create returns ErrEmailTaken or ErrGoogleIDTaken on a unique violation.
	Create(ctx context.Context, u *User) error

	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail expects a normalized email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	FindByGoogleID(ctx context.Context, googleID string) (*User, error)

	// List returns a page of users, newest first.
	List(ctx context.Context, page query.Page) ([]*User, int64, error)

	Update(ctx context.Context, u *User) error
}
