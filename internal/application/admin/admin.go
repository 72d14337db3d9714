package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/admin"
	"github.com/xiebiao/blend/pkg/jwt"
)

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

type LoginUseCase struct {
	adminService admin.Service
	tokens       *jwt.Manager
}

func NewLoginUseCase(adminService admin.Service, tokens *jwt.Manager) *LoginUseCase {
	return &LoginUseCase{adminService: adminService, tokens: tokens}
}

type LoginRequest struct {
	Email    string
	Password string
}

func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	a, err := uc.adminService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	token, err := uc.tokens.GenerateToken(a.ID, a.Email, jwt.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{AccessToken: token, Email: a.Email, Role: a.Role}, nil
}

// SeedUseCase makes sure the configured admin account exists. It runs once
// at startup.
type SeedUseCase struct {
	adminService admin.Service
	log          *zap.Logger
}

func NewSeedUseCase(adminService admin.Service, log *zap.Logger) *SeedUseCase {
	return &SeedUseCase{adminService: adminService, log: log}
}

func (uc *SeedUseCase) Execute(ctx context.Context, email, password string) error {
	created, err := uc.adminService.Seed(ctx, email, password)
	if err != nil {
		return err
	}
	if created {
		uc.log.Info("admin account created", zap.String("email", email))
	} else {
		uc.log.Info("admin account already exists", zap.String("email", email))
	}
	return nil
}
