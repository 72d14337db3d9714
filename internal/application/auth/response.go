package auth

import (
	"context"
	"time"

	"github.com/xiebiao/blend/internal/domain/user"
	"github.com/xiebiao/blend/pkg/jwt"
)

// UserInfo is the public profile returned with a session token.
type UserInfo struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	IsVerified bool   `json:"isVerified"`
}

func toUserInfo(u *user.User) UserInfo {
	return UserInfo{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		IsVerified: u.IsVerified,
	}
}

type AuthResponse struct {
	Message     string   `json:"message,omitempty"`
	AccessToken string   `json:"accessToken"`
	User        UserInfo `json:"user"`
}

type RegisterResponse struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Notifier sends the account emails. *mail.Mailer implements it.
type Notifier interface {
	SendVerification(ctx context.Context, to, firstName, code string, expiresInMinutes int) error
	SendWelcome(ctx context.Context, to, firstName string) error
}

// TokenRevoker blacklists a token for ttl. *redis.TokenStore implements it.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// issue signs a user session token.
func issue(tokens *jwt.Manager, u *user.User, message string) (*AuthResponse, error) {
	token, err := tokens.GenerateToken(u.ID, u.Email, jwt.RoleUser)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Message:     message,
		AccessToken: token,
		User:        toUserInfo(u),
	}, nil
}
