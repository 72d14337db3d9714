package product

import (
	"context"
	"errors"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/xiebiao/blend/internal/domain/category"
	"github.com/xiebiao/blend/internal/domain/media"
	"github.com/xiebiao/blend/internal/domain/product"
	"github.com/xiebiao/blend/internal/domain/query"
	"github.com/xiebiao/blend/internal/domain/subcategory"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Find(ctx context.Context, spec *query.Spec) ([]*product.Product, int64, error) {
	args := m.Called(ctx, spec)
	return args.Get(0).([]*product.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) RandomByCategory(ctx context.Context, categoryID, excludeID string, limit int) ([]*product.Product, error) {
	args := m.Called(ctx, categoryID, excludeID, limit)
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *mockProductRepo) DecrementStock(ctx context.Context, id string, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

// stubCategories answers FindByID from a fixed set.
type stubCategories struct {
	category.Repository
	ids map[string]bool
}

func (s *stubCategories) FindByID(_ context.Context, id string) (*category.Category, error) {
	if !s.ids[id] {
		return nil, category.NotFound(id)
	}
	return &category.Category{ID: id, Title: strings.ToUpper(id)}, nil
}

// stubSubcategories maps subcategory id to its category id.
type stubSubcategories struct {
	subcategory.Repository
	parents map[string]string
}

func (s *stubSubcategories) FindByID(_ context.Context, id string) (*subcategory.Subcategory, error) {
	parent, ok := s.parents[id]
	if !ok {
		return nil, subcategory.NotFound(id)
	}
	return &subcategory.Subcategory{ID: id, CategoryID: parent}, nil
}

type memStore struct {
	saved      []string
	deleted    []string
	failSave   bool
	failDelete bool
}

func (s *memStore) Save(_ context.Context, entity string, f media.File) (string, error) {
	if s.failSave {
		return "", errors.New("bucket unavailable")
	}
	url := "/uploads/" + entity + "/" + f.Filename
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *memStore) Delete(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	if s.failDelete {
		return errors.New("permission denied")
	}
	return nil
}
