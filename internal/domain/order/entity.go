package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the order workflow state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusRejected Status = "rejected"
	StatusSuccess  Status = "success"
)

// Statuses lists every workflow state in display order.
var Statuses = []Status{StatusPending, StatusRejected, StatusSuccess}

// ParseStatus accepts the wire names of the workflow states.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", InvalidStatus(s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusRejected, StatusSuccess:
		return true
	}
	return false
}

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentCard           PaymentMethod = "card"
	PaymentOnline         PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentCard, PaymentOnline:
		return true
	}
	return false
}

// Customer holds the contact data captured at checkout.
type Customer struct {
	Name    string
	Surname string
	Address string
	Phone   string
	Email   string
}

// Order is the aggregate root; items are only reachable through it.
// TotalPrice is fixed at creation from the snapshotted item prices.
type Order struct {
	ID            uint
	Customer      Customer
	PaymentMethod PaymentMethod
	Status        Status
	Items         []OrderItem
	TotalPrice    decimal.Decimal
	UserID        *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem snapshots the product name and unit price at order time.
type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// Subtotal is Price × Quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder validates the items and builds a pending order whose total is
// the sum of the item subtotals.
func NewOrder(customer Customer, method PaymentMethod, items []OrderItem, userID *string) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	if method == "" {
		method = PaymentCashOnDelivery
	}
	if !method.Valid() {
		return nil, InvalidPaymentMethod(string(method))
	}
	for _, it := range items {
		if it.ProductID == "" {
			return nil, ErrProductRequired
		}
		if it.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if it.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
	}

	now := time.Now()
	o := &Order{
		Customer:      customer,
		PaymentMethod: method,
		Status:        StatusPending,
		Items:         items,
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	o.TotalPrice = o.CalculateTotal()
	return o, nil
}

// CalculateTotal sums the item subtotals.
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// ReducesStockOn reports whether moving to target must take the items out
// of stock: only entering success from another state does.
func (o *Order) ReducesStockOn(target Status) bool {
	return target == StatusSuccess && o.Status != StatusSuccess
}

// TransitionTo moves the order to target. Every valid status is accepted.
func (o *Order) TransitionTo(target Status) error {
	if !target.Valid() {
		return InvalidStatus(string(target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}
