package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/blend/internal/domain/admin"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) admin.Repository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, a *admin.Admin) error {
	if a.ID == "" {
		a.ID = newID()
	}
	model := &AdminModel{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.Password,
		Role:         a.Role,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.Conflict("Admin with this email already exists")
		}
		return apperrors.Wrap(err, "failed to create admin")
	}
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	return r.first(r.getDB(ctx).Where("email = ?", email))
}

func (r *adminRepository) FindByID(ctx context.Context, id string) (*admin.Admin, error) {
	return r.first(r.getDB(ctx).Where("id = ?", id))
}

func (r *adminRepository) first(db *gorm.DB) (*admin.Admin, error) {
	var m AdminModel
	if err := db.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admin.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to find admin")
	}
	return &admin.Admin{
		ID:        m.ID,
		Email:     m.Email,
		Password:  m.PasswordHash,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r *adminRepository) getDB(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}
