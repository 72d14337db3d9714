package product

import (
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

var (
	ErrTitleRequired    = apperrors.New(apperrors.ErrCodeInvalidParams, "title is required")
	ErrInvalidPrice     = apperrors.New(apperrors.ErrCodeInvalidParams, "price must not be negative")
	ErrInvalidStock     = apperrors.New(apperrors.ErrCodeInvalidParams, "stock must not be negative")
	ErrInvalidQuantity  = apperrors.New(apperrors.ErrCodeInvalidParams, "quantity must be at least 1")
	ErrCategoryRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "categoryId is required")
)

// NotFound is returned for an unknown product id.
func NotFound(id string) *apperrors.AppError {
	return apperrors.NotFound("Product", id)
}

// InsufficientStock is the order-time stock check failure.
func InsufficientStock(p *Product, requested int) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInsufficientStock,
		"Insufficient stock for product %q. Available: %d, requested: %d", p.Title, p.Stock, requested)
}

// CannotReduceStock is the fulfillment-time decrement failure.
func CannotReduceStock(p *Product, quantity int) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInsufficientStock,
		"Cannot reduce stock of product %q by %d. Only %d available.", p.Title, quantity, p.Stock)
}

// SubcategoryMismatch is returned when a subcategory belongs to another category.
func SubcategoryMismatch(subcategoryID, categoryID string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeSubcategoryMismatch,
		"Subcategory %s does not belong to category %s", subcategoryID, categoryID)
}
