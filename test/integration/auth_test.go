package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/blend/pkg/errors"
)

func TestUserAccountFlow(t *testing.T) {
	s := NewServer(t)
	const email = "anna@example.com"

	// 1. register
	status, env := s.SendJSON(http.MethodPost, "/auth/register", map[string]string{
		"email":           email,
		"password":        "secret1",
		"confirmPassword": "secret1",
		"firstName":       "Anna",
		"lastName":        "Petrosyan",
		"phone":           "+37491000000",
	}, "")
	require.Equal(t, http.StatusCreated, status, env.Message)
	var registered struct {
		UserID string `json:"userId"`
	}
	env.Decode(t, &registered)
	assert.NotEmpty(t, registered.UserID)

	// 2. login is refused until the email is verified
	login := map[string]string{"email": email, "password": "secret1"}
	status, env = s.SendJSON(http.MethodPost, "/auth/login", login, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperrors.ErrCodeEmailNotVerified, env.Code)

	// 3. verify with the mailed code
	code := s.Mail.codeFor(email)
	require.Len(t, code, 6)
	status, env = s.SendJSON(http.MethodPost, "/auth/verify-email", map[string]string{"email": email, "otp": code}, "")
	require.Equal(t, http.StatusOK, status, env.Message)
	var verified struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			IsVerified bool `json:"isVerified"`
		} `json:"user"`
	}
	env.Decode(t, &verified)
	assert.NotEmpty(t, verified.AccessToken)
	assert.True(t, verified.User.IsVerified)

	status, env = s.SendJSON(http.MethodPost, "/auth/verify-email", map[string]string{"email": email, "otp": code}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperrors.ErrCodeAlreadyVerified, env.Code)

	// 4. login and use the token
	status, env = s.SendJSON(http.MethodPost, "/auth/login", login, "")
	require.Equal(t, http.StatusOK, status, env.Message)
	var session struct {
		AccessToken string `json:"accessToken"`
	}
	env.Decode(t, &session)

	status, env = s.GetJSON("/public/orders/my-orders", session.AccessToken)
	assert.Equal(t, http.StatusOK, status, env.Message)

	status, _ = s.GetJSON("/orders", session.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, status, "user token on an admin route")

	status, _ = s.SendJSON(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": "wrong-one"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	// 5. logout
	status, env = s.Do(http.MethodPost, "/auth/logout", nil, "", session.AccessToken)
	require.Equal(t, http.StatusOK, status)
	var out struct {
		Message string `json:"message"`
	}
	env.Decode(t, &out)
	assert.Equal(t, "Logged out", out.Message)
}

func TestRegisterRejections(t *testing.T) {
	s := NewServer(t)
	body := map[string]string{
		"email":           "anna@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
		"firstName":       "Anna",
		"lastName":        "Petrosyan",
		"phone":           "+37491000000",
	}
	status, _ := s.SendJSON(http.MethodPost, "/auth/register", body, "")
	require.Equal(t, http.StatusCreated, status)

	t.Run("duplicate email ignores case", func(t *testing.T) {
		dup := copyBody(body)
		dup["email"] = "ANNA@example.com"
		status, env := s.SendJSON(http.MethodPost, "/auth/register", dup, "")
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, apperrors.ErrCodeEmailDuplicate, env.Code)
	})

	t.Run("passwords differ", func(t *testing.T) {
		bad := copyBody(body)
		bad["email"] = "other@example.com"
		bad["confirmPassword"] = "secret2"
		status, _ := s.SendJSON(http.MethodPost, "/auth/register", bad, "")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("invalid phone", func(t *testing.T) {
		bad := copyBody(body)
		bad["email"] = "third@example.com"
		bad["phone"] = "call me"
		status, env := s.SendJSON(http.MethodPost, "/auth/register", bad, "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, env.Message, "Invalid phone number format")
	})

	t.Run("password over bcrypt limit", func(t *testing.T) {
		bad := copyBody(body)
		bad["email"] = "fourth@example.com"
		bad["password"] = strings.Repeat("a", 80)
		bad["confirmPassword"] = bad["password"]
		status, env := s.SendJSON(http.MethodPost, "/auth/register", bad, "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
		assert.Contains(t, env.Message, "password must be at most 72")

		// 40 runes, 80 bytes
		bad["password"] = strings.Repeat("ж", 40)
		bad["confirmPassword"] = bad["password"]
		status, env = s.SendJSON(http.MethodPost, "/auth/register", bad, "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
		assert.Equal(t, "password must be at most 72 bytes", env.Message)
	})
}

func TestRegisterMailFailure(t *testing.T) {
	s := NewServer(t)
	s.Mail.setDown(true)

	status, env := s.SendJSON(http.MethodPost, "/auth/register", map[string]string{
		"email":           "anna@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
		"firstName":       "Anna",
		"lastName":        "Petrosyan",
		"phone":           "+37491000000",
	}, "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, apperrors.ErrCodeMailError, env.Code)
	assert.Equal(t, "Failed to send verification email", env.Message)

	// the account exists; a resend delivers once the provider is back
	s.Mail.setDown(false)
	status, env = s.SendJSON(http.MethodPost, "/auth/resend-code", map[string]string{"email": "anna@example.com"}, "")
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Len(t, s.Mail.codeFor("anna@example.com"), 6)
}

func TestAdminAuth(t *testing.T) {
	s := NewServer(t)

	status, env := s.SendJSON(http.MethodPost, "/admin/login", map[string]string{
		"email":    adminEmail,
		"password": "wrong-one",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.ErrCodeInvalidCredentials, env.Code)

	token := s.AdminToken()
	status, env = s.GetJSON("/admin/users", token)
	require.Equal(t, http.StatusOK, status, env.Message)
	require.NotNil(t, env.Meta)

	status, _ = s.GetJSON("/admin/users", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.GetJSON("/auth/google", "")
	assert.Equal(t, http.StatusNotFound, status, "google login is not configured")

}

func copyBody(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
