package admin

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/blend/pkg/errors"
)

const passwordCost = 10

type Service interface {
	// Authenticate checks admin credentials. Every failure is ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*Admin, error)

	// Seed creates the admin account unless one with the email exists.
	Seed(ctx context.Context, email, password string) (created bool, err error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*Admin, error) {
	a, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return a, nil
}

func (s *service) Seed(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to hash admin password")
	}
	if err := s.repo.Create(ctx, NewAdmin(email, string(hashed))); err != nil {
		return false, err
	}
	return true, nil
}
