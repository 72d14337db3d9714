package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/blend/pkg/errors"
	"github.com/xiebiao/blend/pkg/jwt"
	"github.com/xiebiao/blend/pkg/response"
)

const (
	ctxKeyClaims = "claims"
	ctxKeyToken  = "token"
)

// Blacklist reports revoked tokens. *redis.TokenStore implements it.
type Blacklist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware checks bearer tokens:
//  1. extract the token from the Authorization header
//  2. reject it when it has been revoked at logout
//  3. verify signature and expiry
//  4. check the role and put the claims on the context
type AuthMiddleware struct {
	tokens    *jwt.Manager
	blacklist Blacklist // nil when Redis is disabled
}

func NewAuthMiddleware(tokens *jwt.Manager, blacklist Blacklist) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:    tokens,
		blacklist: blacklist,
	}
}

// RequireAdmin only lets admin tokens through.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.require(jwt.RoleAdmin)
}

// RequireUser only lets storefront user tokens through.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return m.require(jwt.RoleUser)
}

func (m *AuthMiddleware) require(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		claims, err := m.authenticate(c.Request.Context(), token)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}
		if claims.Role != role {
			response.AbortWithError(c, apperrors.ErrForbidden)
			return
		}

		c.Set(ctxKeyClaims, claims)
		c.Set(ctxKeyToken, token)
		c.Next()
	}
}

// OptionalUser attaches a valid user token when one is presented and
// otherwise lets the request through as a guest.
func (m *AuthMiddleware) OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		token, err := bearerToken(c)
		if err == nil {
			if claims, err := m.authenticate(c.Request.Context(), token); err == nil && claims.Role == jwt.RoleUser {
				c.Set(ctxKeyClaims, claims)
				c.Set(ctxKeyToken, token)
			}
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	if m.blacklist != nil {
		revoked, err := m.blacklist.IsRevoked(ctx, token)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, apperrors.ErrTokenRevoked
		}
	}
	return m.tokens.ParseToken(token)
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", apperrors.ErrUnauthorized
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.ErrInvalidToken
	}
	return strings.TrimSpace(parts[1]), nil
}

// =========================================
// Context helpers
// =========================================

// GetClaims returns the verified claims, or nil for a guest.
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(ctxKeyClaims); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetToken returns the raw bearer token that was verified.
func GetToken(c *gin.Context) string {
	return c.GetString(ctxKeyToken)
}

// GetUserID returns the subject of the verified token, or "" for a guest.
func GetUserID(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil {
		return claims.UserID()
	}
	return ""
}
