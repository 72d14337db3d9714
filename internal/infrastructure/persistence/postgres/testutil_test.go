package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/blend/internal/domain/category"
	"github.com/xiebiao/blend/internal/domain/product"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, title string) *category.Category {
	t.Helper()
	c, err := category.NewCategory(title, "", "", "")
	require.NoError(t, err)
	require.NoError(t, NewCategoryRepository(db).Create(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID, title string, price int64, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(product.Product{
		Title:      title,
		Price:      decimal.NewFromInt(price),
		Stock:      stock,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	require.NoError(t, NewProductRepository(db).Create(context.Background(), p))
	return p
}
