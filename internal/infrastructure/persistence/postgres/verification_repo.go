package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/blend/internal/domain/verification"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) verification.Repository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(ctx context.Context, c *verification.Code) error {
	if c.ID == "" {
		c.ID = newID()
	}
	model := &VerificationCodeModel{
		ID:        c.ID,
		UserID:    c.UserID,
		Code:      c.Code,
		ExpiresAt: c.ExpiresAt,
		CreatedAt: c.CreatedAt,
	}
	if err := r.getDB(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "failed to store verification code")
	}
	return nil
}

func (r *verificationRepository) FindByUserAndCode(ctx context.Context, userID, code string) (*verification.Code, error) {
	var m VerificationCodeModel
	err := r.getDB(ctx).Where("user_id = ? AND code = ?", userID, code).
		Order("created_at DESC").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, verification.ErrInvalidCode
		}
		return nil, apperrors.Wrap(err, "failed to find verification code")
	}
	return &verification.Code{
		ID:        m.ID,
		UserID:    m.UserID,
		Code:      m.Code,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *verificationRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if err := r.getDB(ctx).Where("user_id = ?", userID).Delete(&VerificationCodeModel{}).Error; err != nil {
		return apperrors.Wrap(err, "failed to delete verification codes")
	}
	return nil
}

func (r *verificationRepository) getDB(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}
