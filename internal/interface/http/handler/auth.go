package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/xiebiao/blend/internal/application/auth"
	"github.com/xiebiao/blend/internal/infrastructure/oauth"
	"github.com/xiebiao/blend/internal/interface/http/dto"
	"github.com/xiebiao/blend/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/blend/pkg/errors"
	"github.com/xiebiao/blend/pkg/response"
)

const (
	stateCookie   = "oauth_state"
	stateLifetime = 600 // seconds
)

var (
	errGoogleDisabled = apperrors.New(apperrors.ErrCodeNotFound, "Google login is not configured")
	errStateMismatch  = apperrors.New(apperrors.ErrCodeUnauthorized, "Invalid OAuth state")
)

// AuthHandler serves storefront account endpoints.
type AuthHandler struct {
	registerUseCase    *appauth.RegisterUseCase
	verifyEmailUseCase *appauth.VerifyEmailUseCase
	resendCodeUseCase  *appauth.ResendCodeUseCase
	loginUseCase       *appauth.LoginUseCase
	googleUseCase      *appauth.GoogleLoginUseCase // nil when Google login is off
	logoutUseCase      *appauth.LogoutUseCase
}

func NewAuthHandler(
	registerUseCase *appauth.RegisterUseCase,
	verifyEmailUseCase *appauth.VerifyEmailUseCase,
	resendCodeUseCase *appauth.ResendCodeUseCase,
	loginUseCase *appauth.LoginUseCase,
	googleUseCase *appauth.GoogleLoginUseCase,
	logoutUseCase *appauth.LogoutUseCase,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase:    registerUseCase,
		verifyEmailUseCase: verifyEmailUseCase,
		resendCodeUseCase:  resendCodeUseCase,
		loginUseCase:       loginUseCase,
		googleUseCase:      googleUseCase,
		logoutUseCase:      logoutUseCase,
	}
}

// Register godoc
// @Summary      Register
// @Description  Creates an unverified account and emails a 6-digit code valid for 15 minutes
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "account"
// @Success      201 {object} response.Response{data=appauth.RegisterResponse}
// @Failure      400 {object} response.Response "validation failed or passwords differ"
// @Failure      409 {object} response.Response "email already registered"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appauth.RegisterRequest{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// VerifyEmail godoc
// @Summary      Verify email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.VerifyEmailRequest true "email and code"
// @Success      200 {object} response.Response{data=appauth.AuthResponse}
// @Failure      400 {object} response.Response "invalid or expired code"
// @Failure      404 {object} response.Response
// @Router       /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.verifyEmailUseCase.Execute(c.Request.Context(), appauth.VerifyEmailRequest{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ResendCode godoc
// @Summary      Resend the verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.ResendCodeRequest true "email"
// @Success      200 {object} response.Response{data=appauth.MessageResponse}
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /auth/resend-code [post]
func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req dto.ResendCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.resendCodeUseCase.Execute(c.Request.Context(), req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "credentials"
// @Success      200 {object} response.Response{data=appauth.AuthResponse}
// @Failure      400 {object} response.Response "email not verified"
// @Failure      401 {object} response.Response "invalid credentials"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appauth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Google godoc
// @Summary      Start Google login
// @Tags         auth
// @Success      307
// @Failure      404 {object} response.Response "Google login is not configured"
// @Router       /auth/google [get]
func (h *AuthHandler) Google(c *gin.Context) {
	if h.googleUseCase == nil {
		response.Error(c, errGoogleDisabled)
		return
	}

	state, err := oauth.NewState()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, stateLifetime, "/auth/google", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleUseCase.ConsentURL(state))
}

// GoogleCallback godoc
// @Summary      Finish Google login
// @Tags         auth
// @Produce      json
// @Param        code  query string true "authorization code"
// @Param        state query string true "state issued by /auth/google"
// @Success      200 {object} response.Response{data=appauth.AuthResponse}
// @Failure      401 {object} response.Response
// @Router       /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.googleUseCase == nil {
		response.Error(c, errGoogleDisabled)
		return
	}

	// 1. the state must round-trip through the cookie
	expected, err := c.Cookie(stateCookie)
	if err != nil || expected == "" || expected != c.Query("state") {
		response.Error(c, errStateMismatch)
		return
	}
	c.SetCookie(stateCookie, "", -1, "/auth/google", "", c.Request.TLS != nil, true)

	// 2. exchange and sign in
	result, err := h.googleUseCase.Execute(c.Request.Context(), c.Query("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the presented token until it expires
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appauth.MessageResponse}
// @Failure      401 {object} response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	result, err := h.logoutUseCase.Execute(c.Request.Context(), middleware.GetToken(c), middleware.GetClaims(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
