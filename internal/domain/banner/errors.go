package banner

import (
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

var ErrImageRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "image is required")

func NotFound(id string) *apperrors.AppError {
	return apperrors.NotFound("Banner", id)
}
