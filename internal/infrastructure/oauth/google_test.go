package oauth

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/blend/internal/infrastructure/config"
)

func TestAuthCodeURL(t *testing.T) {
	p := NewGoogleProvider(config.GoogleConfig{
		ClientID:     "client-1",
		ClientSecret: "secret",
		CallbackURL:  "http://localhost:3000/auth/google/callback",
	})

	raw := p.AuthCodeURL("state-xyz")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "http://localhost:3000/auth/google/callback", q.Get("redirect_uri"))
	assert.Equal(t, "state-xyz", q.Get("state"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Contains(t, q.Get("scope"), "userinfo.email")
}

func TestNewState(t *testing.T) {
	a, err := NewState()
	require.NoError(t, err)
	b, err := NewState()
	require.NoError(t, err)

	assert.Len(t, a, 22)
	assert.NotEqual(t, a, b)
}
