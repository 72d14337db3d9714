// Package oauth implements the Google sign-in redirect flow.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/xiebiao/blend/internal/domain/user"
	"github.com/xiebiao/blend/internal/infrastructure/config"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

// GoogleProvider builds consent URLs and resolves callback codes into a
// Google profile.
type GoogleProvider struct {
	config *oauth2.Config
}

func NewGoogleProvider(cfg config.GoogleConfig) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{oauth2api.UserinfoEmailScope, oauth2api.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL is the consent page the client is redirected to.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the callback code for a token and reads the userinfo.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*user.GoogleProfile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, authFailed(fmt.Errorf("exchange code: %w", err))
	}

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(p.config.TokenSource(ctx, token)))
	if err != nil {
		return nil, authFailed(fmt.Errorf("create userinfo client: %w", err))
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, authFailed(fmt.Errorf("fetch userinfo: %w", err))
	}
	if info.Id == "" || info.Email == "" {
		return nil, authFailed(errors.New("userinfo without id or email"))
	}

	return &user.GoogleProfile{
		GoogleID:  info.Id,
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
	}, nil
}

// NewState returns a random value for the CSRF state parameter.
func NewState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func authFailed(err error) *apperrors.AppError {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeUnauthorized,
		Message: "Google authentication failed",
		Err:     err,
	}
}
