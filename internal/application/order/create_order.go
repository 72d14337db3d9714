package order

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/order"
	"github.com/xiebiao/blend/internal/domain/product"
	"github.com/xiebiao/blend/pkg/metrics"
	"github.com/xiebiao/blend/pkg/tracing"
)

// CreateOrderUseCase places a checkout order.
//
// Stock is checked per item but not reserved: two checkouts may both pass
// the check for the last unit. The ledger is only touched when an admin
// marks the order successful, where the conditional decrement refuses to
// oversell.
type CreateOrderUseCase struct {
	orderRepo      order.Repository
	productService product.Service
	events         EventPublisher
	log            *zap.Logger
}

func NewCreateOrderUseCase(
	orderRepo order.Repository,
	productService product.Service,
	events EventPublisher,
	log *zap.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:      orderRepo,
		productService: productService,
		events:         events,
		log:            log,
	}
}

type CreateOrderRequest struct {
	Customer      order.Customer
	Items         []CreateOrderItem
	PaymentMethod order.PaymentMethod
	UserID        *string // set when the buyer is signed in
}

// CreateOrderItem carries the price and name shown to the buyer at checkout.
type CreateOrderItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	Name      string
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (resp *OrderResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "order.create")
	start := time.Now()
	defer func() {
		tracing.EndSpan(span, err)
		recordCreation(start, err)
	}()

	// 1. shape checks before any lookup
	if len(req.Items) == 0 {
		return nil, order.ErrEmptyItems
	}
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return nil, order.ErrInvalidQuantity
		}
		if it.Price.IsNegative() {
			return nil, order.ErrInvalidPrice
		}
	}

	// 2. every product must exist with enough stock
	items := make([]order.OrderItem, len(req.Items))
	for i, it := range req.Items {
		p, err := uc.productService.CheckStock(ctx, it.ProductID, it.Quantity)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(it.Name)
		if name == "" {
			name = p.Title
		}
		items[i] = order.OrderItem{
			ProductID: it.ProductID,
			Name:      name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
	}

	// 3. build and persist as pending
	o, err := order.NewOrder(req.Customer, req.PaymentMethod, items, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	// 4. announce
	publish(ctx, uc.events, uc.log, RoutingKeyOrderCreated, orderCreated(o))

	return ToResponse(o), nil
}

// QuickOrderUseCase buys a single product at its current price. The buyer
// is either the signed-in user or a guest identified by email.
type QuickOrderUseCase struct {
	orderRepo      order.Repository
	productService product.Service
	events         EventPublisher
	log            *zap.Logger
}

func NewQuickOrderUseCase(
	orderRepo order.Repository,
	productService product.Service,
	events EventPublisher,
	log *zap.Logger,
) *QuickOrderUseCase {
	return &QuickOrderUseCase{
		orderRepo:      orderRepo,
		productService: productService,
		events:         events,
		log:            log,
	}
}

type QuickOrderRequest struct {
	ProductID     string
	Quantity      int
	UserID        *string
	GuestEmail    string
	PaymentMethod order.PaymentMethod
}

func (uc *QuickOrderUseCase) Execute(ctx context.Context, req QuickOrderRequest) (resp *OrderResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "order.quick")
	start := time.Now()
	defer func() {
		tracing.EndSpan(span, err)
		recordCreation(start, err)
	}()

	// 1. exactly one buyer
	guestEmail := strings.TrimSpace(req.GuestEmail)
	hasUser := req.UserID != nil && *req.UserID != ""
	if hasUser == (guestEmail != "") {
		return nil, order.ErrBuyerRequired
	}

	// 2. product and stock
	p, err := uc.productService.CheckStock(ctx, req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}

	// 3. one line at the live price
	var userID *string
	if hasUser {
		userID = req.UserID
	}
	o, err := order.NewOrder(order.Customer{Email: guestEmail}, req.PaymentMethod, []order.OrderItem{{
		ProductID: p.ID,
		Name:      p.Title,
		Price:     p.Price,
		Quantity:  req.Quantity,
	}}, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	publish(ctx, uc.events, uc.log, RoutingKeyOrderCreated, orderCreated(o))

	return ToResponse(o), nil
}

func orderCreated(o *order.Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:    o.ID,
		UserID:     o.UserID,
		TotalPrice: o.TotalPrice.StringFixed(2),
		Items:      len(o.Items),
		CreatedAt:  o.CreatedAt,
	}
}

func recordCreation(start time.Time, err error) {
	metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())
	if err != nil {
		metrics.IncCounter(metrics.OrdersFailedTotal)
		return
	}
	metrics.IncCounter(metrics.OrdersCreatedTotal)
}
