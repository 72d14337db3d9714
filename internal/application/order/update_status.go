package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/order"
	"github.com/xiebiao/blend/internal/domain/product"
	apperrors "github.com/xiebiao/blend/pkg/errors"
	"github.com/xiebiao/blend/pkg/metrics"
	"github.com/xiebiao/blend/pkg/tracing"
)

// UpdateOrderStatusUseCase moves an order through its workflow. Entering
// success takes every line out of stock, one product after another; a
// failing line stops the update but earlier lines stay decremented.
type UpdateOrderStatusUseCase struct {
	orderRepo      order.Repository
	productService product.Service
	events         EventPublisher
	log            *zap.Logger
}

func NewUpdateOrderStatusUseCase(
	orderRepo order.Repository,
	productService product.Service,
	events EventPublisher,
	log *zap.Logger,
) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{
		orderRepo:      orderRepo,
		productService: productService,
		events:         events,
		log:            log,
	}
}

type UpdateOrderStatusRequest struct {
	OrderID uint
	Status  order.Status
}

func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, req UpdateOrderStatusRequest) (resp *OrderResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "order.update_status")
	defer func() { tracing.EndSpan(span, err) }()

	if !req.Status.Valid() {
		return nil, order.InvalidStatus(string(req.Status))
	}

	// 1. load
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	from := o.Status

	// 2. fulfil: reduce stock line by line
	if o.ReducesStockOn(req.Status) {
		for _, it := range o.Items {
			if err := uc.productService.ReduceStock(ctx, it.ProductID, it.Quantity); err != nil {
				metrics.IncCounterVec(metrics.StockDecrementsTotal, stockResult(err))
				uc.log.Warn("stock reduction failed",
					zap.Uint("order_id", o.ID),
					zap.String("product_id", it.ProductID),
					zap.Int("quantity", it.Quantity),
					zap.Error(err),
				)
				return nil, err
			}
			metrics.IncCounterVec(metrics.StockDecrementsTotal, "success")
		}
	}

	// 3. write the status
	if err := o.TransitionTo(req.Status); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.UpdateStatus(ctx, o.ID, o.Status); err != nil {
		return nil, err
	}
	metrics.IncCounterVec(metrics.OrderStatusChangesTotal, string(o.Status))

	// 4. re-read what was stored
	updated, err := uc.orderRepo.FindByID(ctx, o.ID)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeOrderNotFound) {
			return nil, order.ErrNotFoundAfterUpdate
		}
		return nil, err
	}

	publish(ctx, uc.events, uc.log, RoutingKeyOrderStatusChanged, OrderStatusChangedEvent{
		OrderID:   updated.ID,
		From:      string(from),
		To:        string(updated.Status),
		ChangedAt: updated.UpdatedAt,
	})

	return ToResponse(updated), nil
}

func stockResult(err error) string {
	if apperrors.HasCode(err, apperrors.ErrCodeInsufficientStock) {
		return "insufficient"
	}
	return "error"
}
