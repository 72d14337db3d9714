package subcategory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/blend/internal/domain/category"
	"github.com/xiebiao/blend/internal/domain/product"
	"github.com/xiebiao/blend/internal/domain/query"
	"github.com/xiebiao/blend/internal/domain/subcategory"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

type mockSubcategoryRepo struct {
	mock.Mock
}

func (m *mockSubcategoryRepo) Create(ctx context.Context, s *subcategory.Subcategory) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSubcategoryRepo) FindByID(ctx context.Context, id string) (*subcategory.Subcategory, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*subcategory.Subcategory), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubcategoryRepo) FindAll(ctx context.Context) ([]*subcategory.Subcategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*subcategory.Subcategory), args.Error(1)
}

func (m *mockSubcategoryRepo) FindByCategoryID(ctx context.Context, categoryID string) ([]*subcategory.Subcategory, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]*subcategory.Subcategory), args.Error(1)
}

func (m *mockSubcategoryRepo) Update(ctx context.Context, s *subcategory.Subcategory) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSubcategoryRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type stubCategories struct {
	category.Repository
	ids map[string]bool
}

func (s *stubCategories) FindByID(_ context.Context, id string) (*category.Category, error) {
	if !s.ids[id] {
		return nil, category.NotFound(id)
	}
	return &category.Category{ID: id}, nil
}

type stubProducts struct {
	product.Repository
	referencing int64
}

func (s *stubProducts) Find(_ context.Context, _ *query.Spec) ([]*product.Product, int64, error) {
	return nil, s.referencing, nil
}

var categories = &stubCategories{ids: map[string]bool{"c1": true, "c2": true}}

func TestCreateSubcategory(t *testing.T) {
	repo := new(mockSubcategoryRepo)
	uc := NewCreateSubcategoryUseCase(repo, categories)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*subcategory.Subcategory")).Return(nil).Once()

	resp, err := uc.Execute(ctx, CreateSubcategoryRequest{Title: "Phones", CategoryID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "c1", resp.CategoryID)

	_, err = uc.Execute(ctx, CreateSubcategoryRequest{Title: "Phones", CategoryID: "nope"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))

	_, err = uc.Execute(ctx, CreateSubcategoryRequest{Title: " ", CategoryID: "c1"})
	assert.ErrorIs(t, err, subcategory.ErrTitleRequired)

	repo.AssertExpectations(t)
}

func TestUpdateSubcategoryMove(t *testing.T) {
	ctx := context.Background()
	current := func() *subcategory.Subcategory {
		return &subcategory.Subcategory{ID: "s1", Title: "Phones", CategoryID: "c1"}
	}

	t.Run("refused while referenced", func(t *testing.T) {
		repo := new(mockSubcategoryRepo)
		repo.On("FindByID", ctx, "s1").Return(current(), nil)
		uc := NewUpdateSubcategoryUseCase(repo, categories, &stubProducts{referencing: 3})

		target := "c2"
		_, err := uc.Execute(ctx, UpdateSubcategoryRequest{ID: "s1", CategoryID: &target})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "3 product(s)")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("allowed when unreferenced", func(t *testing.T) {
		repo := new(mockSubcategoryRepo)
		repo.On("FindByID", ctx, "s1").Return(current(), nil)
		repo.On("Update", ctx, mock.Anything).Return(nil)
		uc := NewUpdateSubcategoryUseCase(repo, categories, &stubProducts{})

		target, title := "c2", "Smartphones"
		resp, err := uc.Execute(ctx, UpdateSubcategoryRequest{ID: "s1", CategoryID: &target, Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "c2", resp.CategoryID)
		assert.Equal(t, "Smartphones", resp.Title)
	})

	t.Run("unknown category", func(t *testing.T) {
		repo := new(mockSubcategoryRepo)
		repo.On("FindByID", ctx, "s1").Return(current(), nil)
		uc := NewUpdateSubcategoryUseCase(repo, categories, &stubProducts{})

		target := "c9"
		_, err := uc.Execute(ctx, UpdateSubcategoryRequest{ID: "s1", CategoryID: &target})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	})
}

func TestDeleteSubcategory(t *testing.T) {
	repo := new(mockSubcategoryRepo)
	ctx := context.Background()
	repo.On("FindByID", ctx, "s1").Return(&subcategory.Subcategory{ID: "s1"}, nil)
	repo.On("FindByID", ctx, "s2").Return(nil, subcategory.NotFound("s2"))
	repo.On("Delete", ctx, "s1").Return(nil).Once()

	uc := NewDeleteSubcategoryUseCase(repo)
	require.NoError(t, uc.Execute(ctx, "s1"))
	assert.True(t, apperrors.HasCode(uc.Execute(ctx, "s2"), apperrors.ErrCodeNotFound))
	repo.AssertExpectations(t)
}

func TestListByCategory(t *testing.T) {
	repo := new(mockSubcategoryRepo)
	ctx := context.Background()
	repo.On("FindByCategoryID", ctx, "c1").Return([]*subcategory.Subcategory{{ID: "s1", CategoryID: "c1"}}, nil)

	uc := NewListByCategoryUseCase(repo, categories)
	list, err := uc.Execute(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.Execute(ctx, "missing")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}
