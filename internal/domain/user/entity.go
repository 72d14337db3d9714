package user

import (
	"strings"
	"time"
)

// User is a storefront customer. Password is nil for accounts created
// through Google sign-in.
type User struct {
	ID         string
	Email      string
	Password   *string // bcrypt hash
	FirstName  string
	LastName   string
	Phone      string
	IsVerified bool
	GoogleID   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser creates an unverified password account.
func NewUser(email, hashedPassword, firstName, lastName, phone string) *User {
	now := time.Now()
	return &User{
		Email:     NormalizeEmail(email),
		Password:  &hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewGoogleUser creates a verified account without a password.
func NewGoogleUser(email, firstName, lastName, googleID string) *User {
	now := time.Now()
	return &User{
		Email:      NormalizeEmail(email),
		FirstName:  firstName,
		LastName:   lastName,
		IsVerified: true,
		GoogleID:   &googleID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// HasPassword reports whether the account can sign in with a password.
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// Verify marks the email as confirmed.
func (u *User) Verify() error {
	if u.IsVerified {
		return ErrAlreadyVerified
	}
	u.IsVerified = true
	u.UpdatedAt = time.Now()
	return nil
}

// LinkGoogle attaches a Google account. Google has confirmed the email, so
// the user becomes verified.
func (u *User) LinkGoogle(googleID string) {
	u.GoogleID = &googleID
	u.IsVerified = true
	u.UpdatedAt = time.Now()
}
