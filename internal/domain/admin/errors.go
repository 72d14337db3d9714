package admin

import (
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

var ErrNotFound = apperrors.New(apperrors.ErrCodeNotFound, "Admin not found")
