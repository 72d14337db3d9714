package user

import (
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

var (
	ErrNotFound         = apperrors.New(apperrors.ErrCodeUserNotFound, "User not found")
	ErrEmailTaken       = apperrors.New(apperrors.ErrCodeEmailDuplicate, "User with this email already exists")
	ErrGoogleIDTaken    = apperrors.New(apperrors.ErrCodeConflict, "User with this Google account already exists")
	ErrPasswordMismatch = apperrors.New(apperrors.ErrCodeBadRequest, "Passwords do not match")
	ErrPasswordTooLong  = apperrors.New(apperrors.ErrCodeInvalidParams, "password must be at most 72 bytes")
	ErrAlreadyVerified  = apperrors.New(apperrors.ErrCodeAlreadyVerified, "Email is already verified")
	ErrNotVerified      = apperrors.New(apperrors.ErrCodeEmailNotVerified, "Please verify your email before logging in")
)

func NotFound(id string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeUserNotFound, "User with id %s not found", id)
}
