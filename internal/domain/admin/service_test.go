package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/blend/pkg/errors"
)

// memRepo is enough for the service; admins are never updated.
type memRepo struct {
	byEmail map[string]*Admin
}

func (r *memRepo) Create(_ context.Context, a *Admin) error {
	a.ID = "a" + a.Email
	r.byEmail[a.Email] = a
	return nil
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*Admin, error) {
	if a, ok := r.byEmail[email]; ok {
		return a, nil
	}
	return nil, ErrNotFound
}

func (r *memRepo) FindByID(_ context.Context, id string) (*Admin, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrNotFound
}

func TestSeedAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&memRepo{byEmail: map[string]*Admin{}})

	created, err := svc.Seed(ctx, "Admin@Example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Seed(ctx, "admin@example.com", "other")
	require.NoError(t, err)
	assert.False(t, created, "existing admin is left alone")

	a, err := svc.Authenticate(ctx, "ADMIN@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, a.Role)

	_, err = svc.Authenticate(ctx, "admin@example.com", "nope")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "ghost@example.com", "admin123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
