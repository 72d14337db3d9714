package order

import (
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

var (
	ErrEmptyItems      = apperrors.New(apperrors.ErrCodeInvalidParams, "Order must contain at least one item")
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "quantity must be at least 1")
	ErrInvalidPrice    = apperrors.New(apperrors.ErrCodeInvalidParams, "price must not be negative")
	ErrProductRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "productId is required")

	// ErrBuyerRequired is returned by the single-product checkout when neither
	// or both of the user and the guest email are present.
	ErrBuyerRequired = apperrors.New(apperrors.ErrCodeBadRequest, "Either userId or guestEmail must be provided")

	ErrNotFoundAfterUpdate = apperrors.New(apperrors.ErrCodeOrderNotFound, "Order not found after update")
)

func NotFound(id uint) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeOrderNotFound, "Order with id %d not found", id)
}

func InvalidStatus(s string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInvalidOrderStatus,
		"Invalid order status %q, expected one of pending, rejected, success", s)
}

func InvalidPaymentMethod(m string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInvalidParams,
		"Invalid payment method %q, expected one of cash_on_delivery, card, online", m)
}
