package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/blend/pkg/errors"
)

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 10

// GoogleProfile is the identity returned by Google after consent.
type GoogleProfile struct {
	GoogleID  string
	Email     string
	FirstName string
	LastName  string
}

// Service holds the account rules: unique emails, password hashing and the
// Google account linking policy.
type Service interface {
	// Register creates an unverified account. The email must not be taken.
	Register(ctx context.Context, email, password, firstName, lastName, phone string) (*User, error)

	// Authenticate checks the password of a verified account.
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// LoginWithGoogle finds the account by Google id, then by email (linking
	// it), and otherwise creates a verified one.
	LoginWithGoogle(ctx context.Context, profile GoogleProfile) (*User, error)
}

type service struct {
	repo Repository
}

// NewService creates the user domain service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, email, password, firstName, lastName, phone string) (*User, error) {
	email = NormalizeEmail(email)

	// 1. reject known emails up front, the unique index still catches races
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// 2. hash
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 3. persist
	u := NewUser(email, hashed, firstName, lastName, phone)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.HasPassword() {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := ComparePassword(*u.Password, password); err != nil {
		return nil, err
	}

	if !u.IsVerified {
		return nil, ErrNotVerified
	}
	return u, nil
}

func (s *service) LoginWithGoogle(ctx context.Context, profile GoogleProfile) (*User, error) {
	// 1. known Google account
	u, err := s.repo.FindByGoogleID(ctx, profile.GoogleID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// 2. existing email account, link it
	u, err = s.repo.FindByEmail(ctx, NormalizeEmail(profile.Email))
	if err == nil {
		u.LinkGoogle(profile.GoogleID)
		if err := s.repo.Update(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// 3. first sign-in
	u = NewGoogleUser(profile.Email, profile.FirstName, profile.LastName, profile.GoogleID)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// HashPassword hashes a plain password with bcrypt, which only accepts
// up to 72 bytes.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return string(hashed), nil
}

// ComparePassword returns ErrInvalidCredentials when password does not match hash.
func ComparePassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return apperrors.ErrInvalidCredentials
	}
	return apperrors.Wrap(err, "failed to verify password")
}
