package category

import (
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

var (
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "title is required")
	ErrInvalidSlug   = apperrors.New(apperrors.ErrCodeInvalidParams, "slug must contain at least one letter or digit")
)

// NotFound is returned for an unknown category id.
func NotFound(id string) *apperrors.AppError {
	return apperrors.NotFound("Category", id)
}

// SlugTaken is the unique slug violation.
func SlugTaken(slug string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeSlugDuplicate, "Category with slug %s already exists", slug)
}

// InUse refuses deleting a category that still has products.
func InUse(title string, products int64) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeCategoryInUse,
		"Cannot delete category %q because it has %d product(s) associated with it. Please remove or reassign the products first.",
		title, products)
}
