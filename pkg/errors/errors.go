package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the error type every layer returns to the HTTP boundary.
// Code drives the response status, Message is shown to the client and
// Err is the internal cause, which is only logged.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap supports errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by code and message, so sentinel comparisons keep
// working after a parameterized copy was built with the same text.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates an AppError.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates an AppError with a formatted message.
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap turns an infrastructure error (database, network) into an internal
// AppError and hides the cause from the client.
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf formats the message of a wrapped error.
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// Error codes
// =========================================
// The first three digits match the HTTP status the code is rendered with:
// - 400xx: bad request (validation, business rules)
// - 401xx: unauthorized
// - 404xx: resource not found
// - 409xx: conflict on a unique key
// - 500xx: server side failures

const (
	ErrCodeInternal      = 50000
	ErrCodeDatabaseError = 50001
	ErrCodeRedisError    = 50002
	ErrCodeStorageError  = 50003
	ErrCodeMailError     = 50004

	ErrCodeUnauthorized       = 40100
	ErrCodeInvalidToken       = 40101
	ErrCodeTokenExpired       = 40102
	ErrCodeInvalidCredentials = 40103
	ErrCodeForbidden          = 40104
	ErrCodeTokenRevoked       = 40105

	ErrCodeNotFound      = 40400
	ErrCodeUserNotFound  = 40401
	ErrCodeOrderNotFound = 40403

	ErrCodeBadRequest          = 40000
	ErrCodeInsufficientStock   = 40001
	ErrCodeInvalidOrderStatus  = 40002
	ErrCodeSubcategoryMismatch = 40003
	ErrCodeEmailNotVerified    = 40004
	ErrCodeInvalidCode         = 40005
	ErrCodeCodeExpired         = 40006
	ErrCodeAlreadyVerified     = 40007
	ErrCodeCategoryInUse       = 40008

	ErrCodeInvalidParams = 40090
	ErrCodeBindError     = 40091

	ErrCodeConflict       = 40900
	ErrCodeEmailDuplicate = 40901
	ErrCodeSlugDuplicate  = 40902
)

// =========================================
// Predefined errors
// =========================================

var (
	ErrInternal      = New(ErrCodeInternal, "Internal server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Database error")
	ErrRedisError    = New(ErrCodeRedisError, "Cache service error")

	ErrUnauthorized       = New(ErrCodeUnauthorized, "Unauthorized")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "Invalid token")
	ErrTokenExpired       = New(ErrCodeTokenExpired, "Token expired")
	ErrTokenRevoked       = New(ErrCodeTokenRevoked, "Token has been revoked")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrForbidden          = New(ErrCodeForbidden, "Insufficient permissions")

	ErrInvalidParams = New(ErrCodeInvalidParams, "Invalid parameters")
	ErrBindError     = New(ErrCodeBindError, "Malformed request body")
)

// NotFound builds the standard "<Entity> with id X not found" error.
func NotFound(entity string, id interface{}) *AppError {
	return Newf(ErrCodeNotFound, "%s with id %v not found", entity, id)
}

// BadRequest builds a validation error with a descriptive message.
func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message)
}

// Conflict builds a unique-key conflict error.
func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message)
}

// =========================================
// Helpers
// =========================================

// HTTPStatus maps a business code to the HTTP status used on the wire.
func HTTPStatus(code int) int {
	switch code / 100 {
	case 400:
		return http.StatusBadRequest
	case 401:
		return http.StatusUnauthorized
	case 403:
		return http.StatusForbidden
	case 404:
		return http.StatusNotFound
	case 409:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsAppError reports whether err carries an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from err, wrapping unknown errors as internal.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal server error")
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
