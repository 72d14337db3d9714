package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[int]int{
		ErrCodeBadRequest:          http.StatusBadRequest,
		ErrCodeInvalidParams:       http.StatusBadRequest,
		ErrCodeEmailNotVerified:    http.StatusBadRequest,
		ErrCodeInvalidCredentials:  http.StatusUnauthorized,
		ErrCodeForbidden:           http.StatusUnauthorized,
		ErrCodeNotFound:            http.StatusNotFound,
		ErrCodeOrderNotFound:       http.StatusNotFound,
		ErrCodeConflict:            http.StatusConflict,
		ErrCodeSlugDuplicate:       http.StatusConflict,
		ErrCodeInternal:            http.StatusInternalServerError,
		ErrCodeStorageError:        http.StatusInternalServerError,
		ErrCodeSubcategoryMismatch: http.StatusBadRequest,
	}
	for code, status := range cases {
		assert.Equal(t, status, HTTPStatus(code), "code %d", code)
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("app error passes through", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", ErrInvalidCredentials)
		assert.Same(t, ErrInvalidCredentials, GetAppError(err))
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		cause := errors.New("connection refused")
		appErr := GetAppError(cause)
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.ErrorIs(t, appErr, cause)
	})
}

func TestAppErrorIs(t *testing.T) {
	a := NotFound("Product", "42")
	b := NotFound("Product", "42")
	assert.NotSame(t, a, b)
	assert.ErrorIs(t, a, b)
	assert.False(t, errors.Is(a, NotFound("Product", "43")))
	assert.True(t, HasCode(a, ErrCodeNotFound))
	assert.Equal(t, "Product with id 42 not found", a.Message)
}
