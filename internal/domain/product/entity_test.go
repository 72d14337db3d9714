package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/blend/pkg/errors"
)

func newPhone(t *testing.T, stock int) *Product {
	t.Helper()
	p, err := NewProduct(Product{
		ID:         "p1",
		Title:      "Phone",
		Price:      decimal.NewFromInt(100),
		Stock:      stock,
		CategoryID: "c1",
	})
	require.NoError(t, err)
	return p
}

func TestNewProductValidation(t *testing.T) {
	_, err := NewProduct(Product{Title: " ", Price: decimal.Zero, CategoryID: "c1"})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = NewProduct(Product{Title: "x", Price: decimal.NewFromInt(-1), CategoryID: "c1"})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = NewProduct(Product{Title: "x", Stock: -1, CategoryID: "c1"})
	assert.ErrorIs(t, err, ErrInvalidStock)

	_, err = NewProduct(Product{Title: "x"})
	assert.ErrorIs(t, err, ErrCategoryRequired)

	p, err := NewProduct(Product{Title: "x", CategoryID: "c1"})
	require.NoError(t, err)
	assert.NotNil(t, p.ImageURLs)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestReduceStock(t *testing.T) {
	p := newPhone(t, 5)

	require.NoError(t, p.ReduceStock(5))
	assert.Equal(t, 0, p.Stock)

	err := p.ReduceStock(1)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInsufficientStock))
	assert.Contains(t, err.Error(), `"Phone"`)
	assert.Equal(t, 0, p.Stock, "failed decrement leaves stock unchanged")

	assert.ErrorIs(t, p.ReduceStock(0), ErrInvalidQuantity)
}

func TestStockNeverNegative(t *testing.T) {
	p := newPhone(t, 3)
	for _, q := range []int{2, 2, 1, 1, 5} {
		_ = p.ReduceStock(q)
		assert.GreaterOrEqual(t, p.Stock, 0)
	}
	assert.Equal(t, 0, p.Stock)

	require.NoError(t, p.IncreaseStock(4))
	assert.Equal(t, 4, p.Stock)
}

func TestImages(t *testing.T) {
	p := newPhone(t, 1)
	p.AddImages("/uploads/products/a.jpg", "/uploads/products/b.jpg", "/uploads/products/c.jpg")

	removed := p.RemoveImages([]string{"/uploads/products/b.jpg", "/uploads/products/missing.jpg"})

	assert.Equal(t, []string{"/uploads/products/b.jpg"}, removed)
	assert.Equal(t, []string{"/uploads/products/a.jpg", "/uploads/products/c.jpg"}, p.ImageURLs)
	assert.Nil(t, p.RemoveImages(nil))
}
