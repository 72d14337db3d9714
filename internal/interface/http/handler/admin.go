package handler

import (
	"github.com/gin-gonic/gin"

	appadmin "github.com/xiebiao/blend/internal/application/admin"
	appauth "github.com/xiebiao/blend/internal/application/auth"
	appuser "github.com/xiebiao/blend/internal/application/user"
	"github.com/xiebiao/blend/internal/interface/http/dto"
	"github.com/xiebiao/blend/internal/interface/http/middleware"
	"github.com/xiebiao/blend/pkg/response"
)

// AdminHandler serves the back-office session and user management.
type AdminHandler struct {
	loginUseCase     *appadmin.LoginUseCase
	logoutUseCase    *appauth.LogoutUseCase
	listUsersUseCase *appuser.ListUsersUseCase
	getUserUseCase   *appuser.GetUserUseCase
}

func NewAdminHandler(
	loginUseCase *appadmin.LoginUseCase,
	logoutUseCase *appauth.LogoutUseCase,
	listUsersUseCase *appuser.ListUsersUseCase,
	getUserUseCase *appuser.GetUserUseCase,
) *AdminHandler {
	return &AdminHandler{
		loginUseCase:     loginUseCase,
		logoutUseCase:    logoutUseCase,
		listUsersUseCase: listUsersUseCase,
		getUserUseCase:   getUserUseCase,
	}
}

// Login godoc
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "credentials"
// @Success      200 {object} response.Response{data=appadmin.LoginResponse}
// @Failure      401 {object} response.Response
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appadmin.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Logout godoc
// @Summary      Admin logout
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appauth.MessageResponse}
// @Router       /admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	result, err := h.logoutUseCase.Execute(c.Request.Context(), middleware.GetToken(c), middleware.GetClaims(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListUsers godoc
// @Summary      List storefront users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "page number" default(1)
// @Param        limit query int false "page size" default(10)
// @Success      200 {object} response.Response{data=[]appuser.UserResponse}
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.listUsersUseCase.Execute(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, result.Users, result.Total, result.Page, result.Limit)
}

// GetUser godoc
// @Summary      Get a storefront user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "user id"
// @Success      200 {object} response.Response{data=appuser.UserResponse}
// @Failure      404 {object} response.Response
// @Router       /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *gin.Context) {
	result, err := h.getUserUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
