package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/blend/pkg/errors"
)

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name                 string
		total                int64
		page, limit          int
		pages                int
		hasNext, hasPrevious bool
	}{
		{"empty", 0, 1, 10, 0, false, false},
		{"exact pages", 30, 1, 10, 3, true, false},
		{"partial last page", 31, 4, 10, 4, false, true},
		{"middle page", 45, 2, 10, 5, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMeta(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.pages, m.Pages)
			assert.Equal(t, tt.hasNext, m.HasNext)
			assert.Equal(t, tt.hasPrevious, m.HasPrevious)
			assert.Equal(t, tt.total, m.Total)
		})
	}
}

func TestErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
		code   int
	}{
		{apperrors.NotFound("Order", 7), http.StatusNotFound, apperrors.ErrCodeNotFound},
		{apperrors.Conflict("User with this email already exists"), http.StatusConflict, apperrors.ErrCodeConflict},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, apperrors.ErrCodeInvalidCredentials},
		{errors.New("boom"), http.StatusInternalServerError, apperrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		Error(c, tt.err)

		assert.Equal(t, tt.status, w.Code)
		var body Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tt.code, body.Code)
	}
}

func TestSuccessWithPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithPage(c, []string{"a", "b"}, 12, 2, 10)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []string `json:"data"`
		Meta Meta     `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"a", "b"}, body.Data)
	assert.Equal(t, 2, body.Meta.Pages)
	assert.False(t, body.Meta.HasNext)
	assert.True(t, body.Meta.HasPrevious)
}
