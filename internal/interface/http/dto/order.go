package dto

import "github.com/shopspring/decimal"

type CustomerRequest struct {
	Name    string `json:"name" binding:"required,max=100" example:"Anna"`
	Surname string `json:"surname" binding:"required,max=100" example:"Petrosyan"`
	Address string `json:"address" binding:"required,max=500" example:"Yerevan, Abovyan 1"`
	Phone   string `json:"phone" binding:"required,phone" example:"+37491000000"`
	Email   string `json:"email" binding:"omitempty,email"`
}

type OrderItemRequest struct {
	ProductID string           `json:"productId" binding:"required,uuid"`
	Quantity  int              `json:"quantity" binding:"required,min=1" example:"1"`
	Price     *decimal.Decimal `json:"price" binding:"required" swaggertype:"number" example:"100"`
	Name      string           `json:"name" binding:"max=255" example:"Phone"` // product title when empty
}

// CreateOrderRequest is the checkout payload. Prices are taken as sent.
type CreateOrderRequest struct {
	Customer      CustomerRequest    `json:"customer"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string             `json:"paymentMethod" binding:"required,oneof=cash_on_delivery card online" example:"cash_on_delivery"`
}

// QuickOrderRequest buys one product. guestEmail is required without a
// user token and rejected with one.
type QuickOrderRequest struct {
	ProductID     string `json:"productId" binding:"required,uuid"`
	Quantity      int    `json:"quantity" binding:"required,min=1" example:"1"`
	GuestEmail    string `json:"guestEmail" binding:"omitempty,email"`
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,oneof=cash_on_delivery card online"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending rejected success" example:"success"`
}

type ListOrdersQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=pending rejected success"`
}
