package subcategory

import (
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

var (
	ErrTitleRequired    = apperrors.New(apperrors.ErrCodeInvalidParams, "title is required")
	ErrCategoryRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "categoryId is required")
)

func NotFound(id string) *apperrors.AppError {
	return apperrors.NotFound("Subcategory", id)
}
