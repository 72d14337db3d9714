package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// CodeTTL is how long an emailed code stays valid.
const CodeTTL = 15 * time.Minute

// Code is a 6-digit email confirmation code. A user has at most one
// outstanding code; issuing a new one deletes the previous ones.
type Code struct {
	ID        string
	UserID    string
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewCode issues a fresh code for userID valid for CodeTTL from now.
func NewCode(userID string, now time.Time) (*Code, error) {
	value, err := GenerateCode()
	if err != nil {
		return nil, err
	}
	return &Code{
		UserID:    userID,
		Code:      value,
		ExpiresAt: now.Add(CodeTTL),
		CreatedAt: now,
	}, nil
}

// GenerateCode returns a uniformly random number in [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// IsExpired reports whether now is past the expiry.
func (c *Code) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
