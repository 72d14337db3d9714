package user

import (
	"context"
	"math"
	"time"

	"github.com/xiebiao/blend/internal/domain/query"
	"github.com/xiebiao/blend/internal/domain/user"
)

// UserResponse is the admin view of an account. The password hash is
// never part of it.
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      string    `json:"phone"`
	IsVerified bool      `json:"isVerified"`
	HasGoogle  bool      `json:"hasGoogle"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func ToResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		IsVerified: u.IsVerified,
		HasGoogle:  u.GoogleID != nil,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type UserPage struct {
	Users []*UserResponse `json:"users"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Pages int             `json:"pages"`
}

type ListUsersUseCase struct {
	userRepo user.Repository
}

func NewListUsersUseCase(userRepo user.Repository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, page, limit int) (*UserPage, error) {
	p := query.NewPage(page, limit)
	list, total, err := uc.userRepo.List(ctx, p)
	if err != nil {
		return nil, err
	}
	users := make([]*UserResponse, len(list))
	for i, u := range list {
		users[i] = ToResponse(u)
	}
	return &UserPage{
		Users: users,
		Total: total,
		Page:  p.Number,
		Limit: p.Limit,
		Pages: int(math.Ceil(float64(total) / float64(p.Limit))),
	}, nil
}

type GetUserUseCase struct {
	userRepo user.Repository
}

func NewGetUserUseCase(userRepo user.Repository) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, id string) (*UserResponse, error) {
	u, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToResponse(u), nil
}
