package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/blend/internal/domain/query"
	"github.com/xiebiao/blend/internal/domain/subcategory"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, p *Product) error { return m.Called(ctx, p).Error(0) }
func (m *mockRepo) Update(ctx context.Context, p *Product) error { return m.Called(ctx, p).Error(0) }
func (m *mockRepo) Delete(ctx context.Context, id string) error  { return m.Called(ctx, id).Error(0) }

func (m *mockRepo) FindByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Find(ctx context.Context, spec *query.Spec) ([]*Product, int64, error) {
	args := m.Called(ctx, spec)
	return args.Get(0).([]*Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) RandomByCategory(ctx context.Context, categoryID, excludeID string, limit int) ([]*Product, error) {
	args := m.Called(ctx, categoryID, excludeID, limit)
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *mockRepo) DecrementStock(ctx context.Context, id string, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

type mockSubcategoryRepo struct {
	mock.Mock
	subcategory.Repository
}

func (m *mockSubcategoryRepo) FindByID(ctx context.Context, id string) (*subcategory.Subcategory, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*subcategory.Subcategory), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCheckSubcategory(t *testing.T) {
	ctx := context.Background()
	subs := new(mockSubcategoryRepo)
	subs.On("FindByID", ctx, "s1").Return(&subcategory.Subcategory{ID: "s1", CategoryID: "c1"}, nil)
	subs.On("FindByID", ctx, "missing").Return(nil, subcategory.NotFound("missing"))
	svc := NewService(new(mockRepo), subs)

	assert.NoError(t, svc.CheckSubcategory(ctx, "c1", "s1"))

	err := svc.CheckSubcategory(ctx, "c2", "s1")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSubcategoryMismatch))

	err = svc.CheckSubcategory(ctx, "c1", "missing")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}

func TestCheckStock(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	repo.On("FindByID", ctx, "p1").Return(&Product{ID: "p1", Title: "Phone", Price: decimal.NewFromInt(100), Stock: 5}, nil)
	svc := NewService(repo, new(mockSubcategoryRepo))

	p, err := svc.CheckStock(ctx, "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)

	_, err = svc.CheckStock(ctx, "p1", 6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient stock for product \"Phone\"")

	_, err = svc.CheckStock(ctx, "p1", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestServiceReduceStock(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	repo.On("FindByID", ctx, "p1").Return(&Product{ID: "p1", Title: "Phone", Stock: 2}, nil)
	repo.On("DecrementStock", ctx, "p1", 2).Return(nil).Once()
	svc := NewService(repo, new(mockSubcategoryRepo))

	require.NoError(t, svc.ReduceStock(ctx, "p1", 2))

	err := svc.ReduceStock(ctx, "p1", 3)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInsufficientStock))
	repo.AssertNumberOfCalls(t, "DecrementStock", 1)
}
