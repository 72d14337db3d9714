package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/blend/pkg/errors"
)

const blacklistPrefix = "blend:blacklist:"

// TokenStore is the logout blacklist. A revoked token is kept until its own
// expiry, after which the JWT check rejects it anyway.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke blacklists token for ttl. A non-positive ttl is a no-op since the
// token has already expired.
func (s *TokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

func (s *TokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check token blacklist")
	}
	return n > 0, nil
}

// blacklistKey hashes the token so keys stay short and tokens are not
// readable from Redis.
func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return blacklistPrefix + hex.EncodeToString(sum[:])
}
