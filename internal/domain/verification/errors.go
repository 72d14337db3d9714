package verification

import (
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

var (
	ErrInvalidCode = apperrors.New(apperrors.ErrCodeInvalidCode, "Invalid verification code")
	ErrCodeExpired = apperrors.New(apperrors.ErrCodeCodeExpired, "Verification code has expired")
)
