package verification

import "context"

type Repository interface {
	Create(ctx context.Context, c *Code) error

	// FindByUserAndCode returns ErrInvalidCode when no such pair exists.
	FindByUserAndCode(ctx context.Context, userID, code string) (*Code, error)

	// DeleteByUserID removes every code issued to the user.
	DeleteByUserID(ctx context.Context, userID string) error
}
