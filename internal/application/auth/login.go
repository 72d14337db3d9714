package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/user"
	"github.com/xiebiao/blend/pkg/jwt"
)

type LoginUseCase struct {
	userService user.Service
	tokens      *jwt.Manager
}

func NewLoginUseCase(userService user.Service, tokens *jwt.Manager) *LoginUseCase {
	return &LoginUseCase{userService: userService, tokens: tokens}
}

type LoginRequest struct {
	Email    string
	Password string
}

func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := uc.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return issue(uc.tokens, u, "")
}

// IdentityProvider runs the Google consent flow. *oauth.GoogleProvider
// implements it.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*user.GoogleProfile, error)
}

// GoogleLoginUseCase signs a user in with a Google authorization code,
// linking or creating the account as needed.
type GoogleLoginUseCase struct {
	provider    IdentityProvider
	userService user.Service
	tokens      *jwt.Manager
}

func NewGoogleLoginUseCase(provider IdentityProvider, userService user.Service, tokens *jwt.Manager) *GoogleLoginUseCase {
	return &GoogleLoginUseCase{
		provider:    provider,
		userService: userService,
		tokens:      tokens,
	}
}

// ConsentURL is where the browser is sent to start the flow.
func (uc *GoogleLoginUseCase) ConsentURL(state string) string {
	return uc.provider.AuthCodeURL(state)
}

func (uc *GoogleLoginUseCase) Execute(ctx context.Context, code string) (*AuthResponse, error) {
	// 1. code → profile
	profile, err := uc.provider.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	// 2. find, link or create
	u, err := uc.userService.LoginWithGoogle(ctx, *profile)
	if err != nil {
		return nil, err
	}

	// 3. token
	return issue(uc.tokens, u, "")
}

// LogoutUseCase blacklists the presented token for the rest of its life.
// Without a revoker (no Redis) logout only succeeds client side.
type LogoutUseCase struct {
	revoker TokenRevoker
	log     *zap.Logger
}

func NewLogoutUseCase(revoker TokenRevoker, log *zap.Logger) *LogoutUseCase {
	return &LogoutUseCase{revoker: revoker, log: log}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, token string, claims *jwt.Claims) (*MessageResponse, error) {
	if uc.revoker == nil {
		uc.log.Debug("token revocation disabled, logout is client side only")
		return &MessageResponse{Message: "Logged out"}, nil
	}
	if err := uc.revoker.Revoke(ctx, token, claims.Remaining(time.Now())); err != nil {
		return nil, err
	}
	return &MessageResponse{Message: "Logged out"}, nil
}
