package integration

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/blend/internal/domain/product"
	"github.com/xiebiao/blend/internal/infrastructure/persistence/postgres"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

type productItem struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// 30 products priced 10..300; filtering from 50 leaves 26, and the second
// page of ten ascending starts at the 11th of those.
func TestCategoryListingFilterSortPaginate(t *testing.T) {
	s := NewServer(t)
	admin := s.AdminToken()
	categoryID, _ := s.CreateCategory(admin, "Electronics")

	repo := postgres.NewProductRepository(s.DB)
	base := time.Now()
	for i := 1; i <= 30; i++ {
		p, err := product.NewProduct(product.Product{
			Title:      "Item " + strconv.Itoa(i),
			Price:      decimal.NewFromInt(int64(i * 10)),
			Stock:      1,
			CategoryID: categoryID,
		})
		require.NoError(t, err)
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(context.Background(), p))
	}

	status, env := s.GetJSON("/categories/"+categoryID+"/products?page=2&limit=10&sortBy=price_low_to_high&minPrice=50", "")
	require.Equal(t, http.StatusOK, status, env.Message)

	var items []productItem
	env.Decode(t, &items)
	require.Len(t, items, 10)
	for i, it := range items {
		assert.Equal(t, float64(150+i*10), it.Price)
	}
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(26), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, 3, env.Meta.Pages)

	t.Run("unknown sort key", func(t *testing.T) {
		status, env := s.GetJSON("/categories/"+categoryID+"/products?sortBy=cheapest", "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		status, _ := s.GetJSON("/categories/00000000-0000-0000-0000-000000000000/products", "")
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestCategoryDeleteGuard(t *testing.T) {
	s := NewServer(t)
	admin := s.AdminToken()
	categoryID, _ := s.CreateCategory(admin, "Electronics")
	phoneID := s.CreateProduct(admin, map[string]string{
		"title": "Phone", "price": "100", "stock": "1", "categoryId": categoryID,
	})

	status, env := s.Do(http.MethodDelete, "/categories/"+categoryID, nil, "", admin)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "1 product(s)")

	status, _ = s.GetJSON("/categories/"+categoryID, "")
	assert.Equal(t, http.StatusOK, status, "category is kept")

	status, _ = s.Do(http.MethodDelete, "/products/"+phoneID, nil, "", admin)
	require.Equal(t, http.StatusOK, status)
	status, _ = s.Do(http.MethodDelete, "/categories/"+categoryID, nil, "", admin)
	require.Equal(t, http.StatusOK, status)
	status, _ = s.GetJSON("/categories/"+categoryID, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSubcategoryMismatch(t *testing.T) {
	s := NewServer(t)
	admin := s.AdminToken()
	electronics, _ := s.CreateCategory(admin, "Electronics")
	garden, _ := s.CreateCategory(admin, "Garden")

	status, env := s.SendJSON(http.MethodPost, "/subcategories", map[string]string{
		"title":      "Smartphones",
		"categoryId": electronics,
	}, admin)
	require.Equal(t, http.StatusCreated, status, env.Message)
	var sub struct {
		ID string `json:"id"`
	}
	env.Decode(t, &sub)

	status, env = s.SendForm(http.MethodPost, "/products", map[string]string{
		"title":         "Hose",
		"price":         "10",
		"categoryId":    garden,
		"subcategoryId": sub.ID,
	}, nil, admin)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperrors.ErrCodeSubcategoryMismatch, env.Code)

	status, env = s.GetJSON("/categories/"+garden+"/products", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), env.Meta.Total, "nothing was written")
}

func TestBannerImageUpload(t *testing.T) {
	s := NewServer(t)
	admin := s.AdminToken()

	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for x := 0; x < 64; x++ {
		img.Set(x, x%32, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	t.Run("image is required", func(t *testing.T) {
		status, _ := s.SendForm(http.MethodPost, "/banners", map[string]string{"url": "/sale"}, nil, admin)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("non image is refused", func(t *testing.T) {
		status, env := s.SendForm(http.MethodPost, "/banners", map[string]string{"url": "/sale"},
			[]FormFile{{Field: "image", Filename: "notes.txt", ContentType: "text/plain", Data: []byte("hello")}}, admin)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Only image files are allowed", env.Message)
	})

	status, env := s.SendForm(http.MethodPost, "/banners", map[string]string{"url": "/sale", "text": "Sale"},
		[]FormFile{{Field: "image", Filename: "sale.png", ContentType: "image/png", Data: buf.Bytes()}}, admin)
	require.Equal(t, http.StatusCreated, status, env.Message)
	var banner struct {
		ID       string `json:"id"`
		Image    string `json:"image"`
		IsActive bool   `json:"isActive"`
	}
	env.Decode(t, &banner)
	assert.Contains(t, banner.Image, "/uploads/banners/")
	assert.True(t, banner.IsActive)

	// the stored file is served
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, banner.Image, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	status, env = s.GetJSON("/banners?active=true", "")
	require.Equal(t, http.StatusOK, status)
	var list []struct {
		ID string `json:"id"`
	}
	env.Decode(t, &list)
	require.Len(t, list, 1)
	assert.Equal(t, banner.ID, list[0].ID)
}

func TestHomeSections(t *testing.T) {
	s := NewServer(t)
	admin := s.AdminToken()
	categoryID, _ := s.CreateCategory(admin, "Electronics")
	s.CreateProduct(admin, map[string]string{
		"title": "Hidden", "price": "1", "categoryId": categoryID, "isBestSeller": "true", "disabled": "true",
	})
	s.CreateProduct(admin, map[string]string{
		"title": "Shown", "price": "1", "categoryId": categoryID, "isBestSeller": "true",
	})

	status, env := s.GetJSON("/home/best-seller", "")
	require.Equal(t, http.StatusOK, status)
	var items []productItem
	env.Decode(t, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Shown", items[0].Title)

	status, env = s.GetJSON("/home/categories", "")
	require.Equal(t, http.StatusOK, status)
	var categories []struct {
		Slug string `json:"slug"`
	}
	env.Decode(t, &categories)
	require.Len(t, categories, 1)
	assert.Equal(t, "electronics", categories[0].Slug)
}
