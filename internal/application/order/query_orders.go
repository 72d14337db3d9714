package order

import (
	"context"

	"github.com/xiebiao/blend/internal/domain/order"
	"github.com/xiebiao/blend/internal/domain/query"
)

type GetOrderUseCase struct {
	orderRepo order.Repository
}

func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, id uint) (*OrderResponse, error) {
	o, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToResponse(o), nil
}

// ListOrdersUseCase is the admin order table, newest first.
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

type ListOrdersRequest struct {
	Status string // empty lists every status
	Page   int
	Limit  int
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, req ListOrdersRequest) (*OrderListResponse, error) {
	var status order.Status
	if req.Status != "" {
		s, err := order.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}

	page := query.NewPage(req.Page, req.Limit)
	list, total, err := uc.orderRepo.List(ctx, status, page)
	if err != nil {
		return nil, err
	}
	return &OrderListResponse{
		Orders:     ToResponses(list),
		Pagination: newPagination(page.Number, page.Limit, total),
	}, nil
}

// DeleteOrderUseCase removes an order in any status. Stock already taken
// by a successful order is not given back.
type DeleteOrderUseCase struct {
	orderRepo order.Repository
}

func NewDeleteOrderUseCase(orderRepo order.Repository) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{orderRepo: orderRepo}
}

func (uc *DeleteOrderUseCase) Execute(ctx context.Context, id uint) error {
	if _, err := uc.orderRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.orderRepo.Delete(ctx, id)
}

type StatisticsUseCase struct {
	orderRepo order.Repository
}

func NewStatisticsUseCase(orderRepo order.Repository) *StatisticsUseCase {
	return &StatisticsUseCase{orderRepo: orderRepo}
}

func (uc *StatisticsUseCase) Execute(ctx context.Context) (*StatisticsResponse, error) {
	stats, err := uc.orderRepo.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	return toStatisticsResponse(stats), nil
}

// MyOrdersUseCase lists the orders placed by a signed-in user.
type MyOrdersUseCase struct {
	orderRepo order.Repository
}

func NewMyOrdersUseCase(orderRepo order.Repository) *MyOrdersUseCase {
	return &MyOrdersUseCase{orderRepo: orderRepo}
}

func (uc *MyOrdersUseCase) Execute(ctx context.Context, userID string) ([]*OrderResponse, error) {
	list, err := uc.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToResponses(list), nil
}
