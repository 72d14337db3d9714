package verification

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		c, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, c, 6)
		n, err := strconv.Atoi(c)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestCodeExpiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c, err := NewCode("u1", now)
	require.NoError(t, err)

	assert.Equal(t, now.Add(15*time.Minute), c.ExpiresAt)
	assert.False(t, c.IsExpired(now.Add(15*time.Minute)))
	assert.True(t, c.IsExpired(now.Add(15*time.Minute+time.Second)))
}
