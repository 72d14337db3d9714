package order

import (
	"math"
	"time"

	"github.com/xiebiao/blend/internal/domain/order"
)

type OrderItemResponse struct {
	ID        uint    `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderResponse is the public shape of an order.
type OrderResponse struct {
	ID              uint                `json:"id"`
	CustomerName    string              `json:"customerName"`
	CustomerSurname string              `json:"customerSurname"`
	CustomerAddress string              `json:"customerAddress"`
	CustomerPhone   string              `json:"customerPhone"`
	CustomerEmail   string              `json:"customerEmail"`
	PaymentMethod   string              `json:"paymentMethod"`
	TotalPrice      float64             `json:"totalPrice"`
	Status          string              `json:"status"`
	UserID          *string             `json:"userId"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func ToResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price.InexactFloat64(),
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal().InexactFloat64(),
		}
	}
	return &OrderResponse{
		ID:              o.ID,
		CustomerName:    o.Customer.Name,
		CustomerSurname: o.Customer.Surname,
		CustomerAddress: o.Customer.Address,
		CustomerPhone:   o.Customer.Phone,
		CustomerEmail:   o.Customer.Email,
		PaymentMethod:   string(o.PaymentMethod),
		TotalPrice:      o.TotalPrice.InexactFloat64(),
		Status:          string(o.Status),
		UserID:          o.UserID,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func ToResponses(list []*order.Order) []*OrderResponse {
	out := make([]*OrderResponse, len(list))
	for i, o := range list {
		out[i] = ToResponse(o)
	}
	return out
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func newPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

type OrderListResponse struct {
	Orders     []*OrderResponse `json:"orders"`
	Pagination Pagination       `json:"pagination"`
}

type MonthlyRevenueResponse struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type StatisticsResponse struct {
	TotalOrders    int                      `json:"totalOrders"`
	TotalRevenue   float64                  `json:"totalRevenue"`
	OrdersByStatus map[string]int           `json:"ordersByStatus"`
	MonthlyRevenue []MonthlyRevenueResponse `json:"monthlyRevenue"`
}

func toStatisticsResponse(s *order.Statistics) *StatisticsResponse {
	byStatus := make(map[string]int, len(s.OrdersByStatus))
	for st, n := range s.OrdersByStatus {
		byStatus[string(st)] = n
	}
	months := make([]MonthlyRevenueResponse, len(s.MonthlyRevenue))
	for i, m := range s.MonthlyRevenue {
		months[i] = MonthlyRevenueResponse{Month: m.Month, Revenue: m.Revenue.InexactFloat64(), Orders: m.Orders}
	}
	return &StatisticsResponse{
		TotalOrders:    s.TotalOrders,
		TotalRevenue:   s.TotalRevenue.InexactFloat64(),
		OrdersByStatus: byStatus,
		MonthlyRevenue: months,
	}
}
