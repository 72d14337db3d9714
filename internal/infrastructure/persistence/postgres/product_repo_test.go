package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/blend/internal/domain/query"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

func TestProductRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProductRepository(db)
	c := seedCategory(t, db, "Electronics")

	p := seedProduct(t, db, c.ID, "Phone", 100, 5)
	p.AddImages("/uploads/products/a.jpg", "/uploads/products/b.jpg")
	p.Price = decimal.RequireFromString("99.50")
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Phone", got.Title)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("99.5")), got.Price.String())
	assert.Equal(t, []string{"/uploads/products/a.jpg", "/uploads/products/b.jpg"}, got.ImageURLs)
	assert.Nil(t, got.SubcategoryID)

	_, err = repo.FindByID(ctx, "missing")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.True(t, apperrors.HasCode(repo.Delete(ctx, p.ID), apperrors.ErrCodeNotFound))
}

func TestProductRepositoryFindPaginatesFilteredSet(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProductRepository(db)
	c := seedCategory(t, db, "Electronics")
	other := seedCategory(t, db, "Books")

	// prices 1..40 in shuffled insert order
	for i := 0; i < 40; i++ {
		price := int64((i*17)%40 + 1)
		seedProduct(t, db, c.ID, fmt.Sprintf("Item %02d", price), price, 1)
	}
	seedProduct(t, db, other.ID, "Elsewhere", 60, 1)

	spec := query.New().
		Where(query.FieldCategoryID, query.OpEq, c.ID).
		Where(query.FieldDisabled, query.OpEq, false).
		Where(query.FieldPrice, query.OpGte, decimal.NewFromInt(5)).
		SortBy(query.SortPriceLowToHigh).
		Paginate(query.NewPage(2, 10))

	items, total, err := repo.Find(ctx, spec)
	require.NoError(t, err)

	assert.Equal(t, int64(36), total, "total counts the full filtered set")
	require.Len(t, items, 10)
	for i, p := range items {
		assert.True(t, p.Price.Equal(decimal.NewFromInt(int64(15+i))), "position %d has price %s", i, p.Price)
	}
}

func TestProductRepositorySearchAndDisabled(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProductRepository(db)
	c := seedCategory(t, db, "Electronics")

	seedProduct(t, db, c.ID, "Smart Phone", 10, 1)
	seedProduct(t, db, c.ID, "PHONE case", 5, 1)
	seedProduct(t, db, c.ID, "100% cotton", 5, 1)
	hidden := seedProduct(t, db, c.ID, "Old phone", 1, 1)
	hidden.Disabled = true
	require.NoError(t, repo.Update(ctx, hidden))

	spec := query.New().
		Where(query.FieldCategoryID, query.OpEq, c.ID).
		Where(query.FieldDisabled, query.OpEq, false).
		Where(query.FieldTitle, query.OpContains, "phone")
	items, total, err := repo.Find(ctx, spec)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	// wildcards match literally
	items, _, err = repo.Find(ctx, query.New().Where(query.FieldTitle, query.OpContains, "0%"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "100% cotton", items[0].Title)
}

func TestProductRepositoryDefaultSort(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProductRepository(db)
	c := seedCategory(t, db, "Electronics")

	low := seedProduct(t, db, c.ID, "Low", 1, 1)
	high := seedProduct(t, db, c.ID, "High", 1, 1)
	high.Priority = 10
	require.NoError(t, repo.Update(ctx, high))

	items, _, err := repo.Find(ctx, query.New())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, high.ID, items[0].ID)
	assert.Equal(t, low.ID, items[1].ID)
}

func TestProductRepositoryDecrementStock(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProductRepository(db)
	c := seedCategory(t, db, "Electronics")
	p := seedProduct(t, db, c.ID, "Phone", 100, 5)

	require.NoError(t, repo.DecrementStock(ctx, p.ID, 3))

	err := repo.DecrementStock(ctx, p.ID, 3)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInsufficientStock))
	assert.Contains(t, err.Error(), "Only 2 available")

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock, "failed decrement leaves stock unchanged")

	err = repo.DecrementStock(ctx, "missing", 1)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}

func TestProductRepositoryRandomByCategory(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProductRepository(db)
	c := seedCategory(t, db, "Electronics")

	viewed := seedProduct(t, db, c.ID, "Viewed", 1, 1)
	for i := 0; i < 12; i++ {
		seedProduct(t, db, c.ID, fmt.Sprintf("P%d", i), 1, 1)
	}
	off := seedProduct(t, db, c.ID, "Off", 1, 1)
	off.Disabled = true
	require.NoError(t, repo.Update(ctx, off))

	got, err := repo.RandomByCategory(ctx, c.ID, viewed.ID, 10)
	require.NoError(t, err)
	assert.Len(t, got, 10)
	for _, p := range got {
		assert.NotEqual(t, viewed.ID, p.ID)
		assert.False(t, p.Disabled)
	}

	n, err := repo.CountByCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(14), n)
}
