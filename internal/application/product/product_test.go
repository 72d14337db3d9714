package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/media"
	"github.com/xiebiao/blend/internal/domain/product"
	"github.com/xiebiao/blend/internal/domain/query"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

type fixture struct {
	repo    *mockProductRepo
	cats    *stubCategories
	subs    *stubSubcategories
	store   *memStore
	service product.Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:  new(mockProductRepo),
		cats:  &stubCategories{ids: map[string]bool{"electronics": true, "books": true}},
		subs:  &stubSubcategories{parents: map[string]string{"phones": "electronics", "novels": "books"}},
		store: &memStore{},
	}
	f.service = product.NewService(f.repo, f.subs)
	return f
}

func strPtr(s string) *string { return &s }

func existingPhone() *product.Product {
	return &product.Product{
		ID:            "p1",
		Title:         "Phone",
		Price:         decimal.NewFromInt(100),
		Stock:         5,
		CategoryID:    "electronics",
		SubcategoryID: strPtr("phones"),
		ImageURLs:     []string{"/uploads/products/a.jpg", "/uploads/products/b.jpg"},
	}
}

func TestCreateProduct(t *testing.T) {
	f := newFixture()
	uc := NewCreateProductUseCase(f.repo, f.cats, f.service, f.store, zap.NewNop())
	ctx := context.Background()

	f.repo.On("Create", ctx, mock.MatchedBy(func(p *product.Product) bool {
		return p.Title == "Phone" && *p.SubcategoryID == "phones" && len(p.ImageURLs) == 1
	})).Return(nil).Once()

	resp, err := uc.Execute(ctx, CreateProductRequest{
		Title:         "Phone",
		Price:         decimal.NewFromInt(100),
		Stock:         5,
		CategoryID:    "electronics",
		SubcategoryID: "phones",
		Images:        []media.File{{Filename: "front.jpg"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, resp.Price)
	assert.Equal(t, []string{"/uploads/products/front.jpg"}, resp.ImageURLs)
	f.repo.AssertExpectations(t)
}

func TestCreateProductSubcategoryMismatchWritesNothing(t *testing.T) {
	f := newFixture()
	uc := NewCreateProductUseCase(f.repo, f.cats, f.service, f.store, zap.NewNop())

	_, err := uc.Execute(context.Background(), CreateProductRequest{
		Title:         "Phone",
		CategoryID:    "electronics",
		SubcategoryID: "novels",
		Images:        []media.File{{Filename: "front.jpg"}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSubcategoryMismatch))
	assert.Empty(t, f.store.saved)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	f := newFixture()
	uc := NewCreateProductUseCase(f.repo, f.cats, f.service, f.store, zap.NewNop())

	_, err := uc.Execute(context.Background(), CreateProductRequest{Title: "Phone", CategoryID: "garden"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}

func TestCreateProductRemovesImagesWhenInsertFails(t *testing.T) {
	f := newFixture()
	uc := NewCreateProductUseCase(f.repo, f.cats, f.service, f.store, zap.NewNop())
	ctx := context.Background()
	f.repo.On("Create", ctx, mock.Anything).Return(apperrors.ErrDatabaseError)

	_, err := uc.Execute(ctx, CreateProductRequest{
		Title:      "Phone",
		CategoryID: "electronics",
		Images:     []media.File{{Filename: "x.jpg"}},
	})
	require.Error(t, err)
	assert.Equal(t, []string{"/uploads/products/x.jpg"}, f.store.deleted)
}

func TestUpdateProductImages(t *testing.T) {
	f := newFixture()
	uc := NewUpdateProductUseCase(f.repo, f.cats, f.service, f.store, zap.NewNop())
	ctx := context.Background()

	f.repo.On("FindByID", ctx, "p1").Return(existingPhone(), nil)
	f.repo.On("Update", ctx, mock.Anything).Return(nil)
	f.store.failDelete = true

	title := "Phone X"
	resp, err := uc.Execute(ctx, UpdateProductRequest{
		ID:             "p1",
		Title:          &title,
		ImagesToRemove: []string{"/uploads/products/a.jpg"},
		NewImages:      []media.File{{Filename: "c.jpg"}},
	})
	require.NoError(t, err, "storage cleanup failures are swallowed")

	assert.Equal(t, "Phone X", resp.Title)
	assert.Equal(t, []string{"/uploads/products/b.jpg", "/uploads/products/c.jpg"}, resp.ImageURLs)
	assert.Equal(t, []string{"/uploads/products/a.jpg"}, f.store.deleted)
}

func TestUpdateProductSubcategoryRules(t *testing.T) {
	ctx := context.Background()

	t.Run("clearing is always allowed", func(t *testing.T) {
		f := newFixture()
		uc := NewUpdateProductUseCase(f.repo, f.cats, f.service, f.store, zap.NewNop())
		f.repo.On("FindByID", ctx, "p1").Return(existingPhone(), nil)
		f.repo.On("Update", ctx, mock.Anything).Return(nil)

		resp, err := uc.Execute(ctx, UpdateProductRequest{ID: "p1", SubcategoryID: strPtr("")})
		require.NoError(t, err)
		assert.Nil(t, resp.SubcategoryID)
	})

	t.Run("checked against the current category", func(t *testing.T) {
		f := newFixture()
		uc := NewUpdateProductUseCase(f.repo, f.cats, f.service, f.store, zap.NewNop())
		f.repo.On("FindByID", ctx, "p1").Return(existingPhone(), nil)

		_, err := uc.Execute(ctx, UpdateProductRequest{ID: "p1", SubcategoryID: strPtr("novels")})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSubcategoryMismatch))
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("checked against the new category", func(t *testing.T) {
		f := newFixture()
		uc := NewUpdateProductUseCase(f.repo, f.cats, f.service, f.store, zap.NewNop())
		f.repo.On("FindByID", ctx, "p1").Return(existingPhone(), nil)
		f.repo.On("Update", ctx, mock.Anything).Return(nil)

		resp, err := uc.Execute(ctx, UpdateProductRequest{
			ID:            "p1",
			CategoryID:    strPtr("books"),
			SubcategoryID: strPtr("novels"),
		})
		require.NoError(t, err)
		assert.Equal(t, "books", resp.CategoryID)
	})

	t.Run("kept subcategory must follow a category move", func(t *testing.T) {
		f := newFixture()
		uc := NewUpdateProductUseCase(f.repo, f.cats, f.service, f.store, zap.NewNop())
		f.repo.On("FindByID", ctx, "p1").Return(existingPhone(), nil)

		_, err := uc.Execute(ctx, UpdateProductRequest{ID: "p1", CategoryID: strPtr("books")})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSubcategoryMismatch))
	})
}

func TestDeleteProductRemovesImages(t *testing.T) {
	f := newFixture()
	uc := NewDeleteProductUseCase(f.repo, f.store, zap.NewNop())
	ctx := context.Background()

	f.repo.On("FindByID", ctx, "p1").Return(existingPhone(), nil)
	f.repo.On("Delete", ctx, "p1").Return(nil)
	f.store.failDelete = true

	require.NoError(t, uc.Execute(ctx, "p1"))
	assert.Len(t, f.store.deleted, 2)
}

func TestGetProductWithSuggestions(t *testing.T) {
	f := newFixture()
	uc := NewGetProductUseCase(f.repo)
	ctx := context.Background()

	other := &product.Product{ID: "p2", Title: "Tablet", CategoryID: "electronics"}
	f.repo.On("FindByID", ctx, "p1").Return(existingPhone(), nil)
	f.repo.On("RandomByCategory", ctx, "electronics", "p1", SuggestionLimit).Return([]*product.Product{other}, nil)

	resp, err := uc.Execute(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", resp.Product.ID)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "p2", resp.Suggestions[0].ID)
}

func TestListByCategoryComposesQuery(t *testing.T) {
	f := newFixture()
	uc := NewListByCategoryUseCase(f.repo, f.cats)
	ctx := context.Background()

	minPrice := decimal.NewFromInt(50)
	f.repo.On("Find", ctx, mock.MatchedBy(func(s *query.Spec) bool {
		return s.Sort == query.SortPriceLowToHigh &&
			s.Page == query.Page{Number: 2, Limit: 10} &&
			len(s.Predicates) == 3 &&
			s.Predicates[1] == query.Predicate{Field: query.FieldDisabled, Op: query.OpEq, Value: false} &&
			s.Predicates[2].Field == query.FieldPrice && s.Predicates[2].Op == query.OpGte
	})).Return([]*product.Product{}, int64(36), nil)

	resp, err := uc.Execute(ctx, ListByCategoryRequest{
		CategoryID: "electronics",
		Page:       2,
		Limit:      10,
		MinPrice:   &minPrice,
		SortBy:     query.SortPriceLowToHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(36), resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.NotNil(t, resp.Items)
}

func TestListByCategoryUnknownCategory(t *testing.T) {
	f := newFixture()
	uc := NewListByCategoryUseCase(f.repo, f.cats)

	_, err := uc.Execute(context.Background(), ListByCategoryRequest{CategoryID: "garden"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	f.repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestListProductsClampsPage(t *testing.T) {
	f := newFixture()
	uc := NewListProductsUseCase(f.repo)
	ctx := context.Background()

	f.repo.On("Find", ctx, mock.MatchedBy(func(s *query.Spec) bool {
		return s.Page == query.Page{Number: 1, Limit: 100} && len(s.Predicates) == 0
	})).Return([]*product.Product{existingPhone()}, int64(1), nil)

	resp, err := uc.Execute(ctx, ListProductsRequest{Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 100, resp.Limit)
}
