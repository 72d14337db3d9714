package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/blend/internal/domain/query"
	"github.com/xiebiao/blend/internal/domain/user"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	model := toUserModel(u)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return translateUserError(err, "failed to create user")
	}
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.first(r.getDB(ctx).Where("id = ?", id))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(r.getDB(ctx).Where("email = ?", email))
}

func (r *userRepository) FindByGoogleID(ctx context.Context, googleID string) (*user.User, error) {
	return r.first(r.getDB(ctx).Where("google_id = ?", googleID))
}

func (r *userRepository) first(db *gorm.DB) (*user.User, error) {
	var model UserModel
	if err := db.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to find user")
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) List(ctx context.Context, page query.Page) ([]*user.User, int64, error) {
	var (
		models []UserModel
		total  int64
	)
	db := r.getDB(ctx).Model(&UserModel{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count users")
	}
	if err := applyPage(db.Order("created_at DESC").Order("id ASC"), page).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list users")
	}

	out := make([]*user.User, len(models))
	for i := range models {
		out[i] = toUserEntity(&models[i])
	}
	return out, total, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	result := r.getDB(ctx).Model(&UserModel{}).Where("id = ?", u.ID).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return translateUserError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return user.NotFound(u.ID)
	}
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}

func translateUserError(err error, msg string) error {
	switch {
	case isUniqueOn(err, "google_id"):
		return user.ErrGoogleIDTaken
	case isDuplicateError(err):
		return user.ErrEmailTaken
	default:
		return apperrors.Wrap(err, msg)
	}
}

func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.Password,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		IsVerified:   u.IsVerified,
		GoogleID:     u.GoogleID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toUserEntity(m *UserModel) *user.User {
	return &user.User{
		ID:         m.ID,
		Email:      m.Email,
		Password:   m.PasswordHash,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Phone:      m.Phone,
		IsVerified: m.IsVerified,
		GoogleID:   m.GoogleID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
