package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/blend/internal/application/order"
	"github.com/xiebiao/blend/internal/domain/order"
	"github.com/xiebiao/blend/internal/interface/http/dto"
	"github.com/xiebiao/blend/internal/interface/http/middleware"
	"github.com/xiebiao/blend/pkg/response"
)

// OrderHandler serves both the admin order desk and the public checkout.
type OrderHandler struct {
	createUseCase       *apporder.CreateOrderUseCase
	quickUseCase        *apporder.QuickOrderUseCase
	updateStatusUseCase *apporder.UpdateOrderStatusUseCase
	getUseCase          *apporder.GetOrderUseCase
	listUseCase         *apporder.ListOrdersUseCase
	deleteUseCase       *apporder.DeleteOrderUseCase
	statisticsUseCase   *apporder.StatisticsUseCase
	myOrdersUseCase     *apporder.MyOrdersUseCase
}

func NewOrderHandler(
	createUseCase *apporder.CreateOrderUseCase,
	quickUseCase *apporder.QuickOrderUseCase,
	updateStatusUseCase *apporder.UpdateOrderStatusUseCase,
	getUseCase *apporder.GetOrderUseCase,
	listUseCase *apporder.ListOrdersUseCase,
	deleteUseCase *apporder.DeleteOrderUseCase,
	statisticsUseCase *apporder.StatisticsUseCase,
	myOrdersUseCase *apporder.MyOrdersUseCase,
) *OrderHandler {
	return &OrderHandler{
		createUseCase:       createUseCase,
		quickUseCase:        quickUseCase,
		updateStatusUseCase: updateStatusUseCase,
		getUseCase:          getUseCase,
		listUseCase:         listUseCase,
		deleteUseCase:       deleteUseCase,
		statisticsUseCase:   statisticsUseCase,
		myOrdersUseCase:     myOrdersUseCase,
	}
}

// =========================================
// Public checkout
// =========================================

// Create godoc
// @Summary      Place an order
// @Description  Guest or signed-in checkout. Stock is checked, not reserved; prices are taken as sent
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "checkout"
// @Success      201 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response "validation failed or insufficient stock"
// @Failure      404 {object} response.Response "product not found"
// @Router       /public/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	// 1. bind
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	// 2. map the payload
	items := make([]apporder.CreateOrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = apporder.CreateOrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     *it.Price,
			Name:      it.Name,
		}
	}

	// 3. place it for the signed-in user, if any
	result, err := h.createUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		Customer: order.Customer{
			Name:    req.Customer.Name,
			Surname: req.Customer.Surname,
			Address: req.Customer.Address,
			Phone:   req.Customer.Phone,
			Email:   req.Customer.Email,
		},
		Items:         items,
		PaymentMethod: order.PaymentMethod(req.PaymentMethod),
		UserID:        optionalUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Quick godoc
// @Summary      Buy one product
// @Description  Needs a user token or a guestEmail, not both
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.QuickOrderRequest true "product and quantity"
// @Success      201 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /public/orders/quick [post]
func (h *OrderHandler) Quick(c *gin.Context) {
	var req dto.QuickOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.quickUseCase.Execute(c.Request.Context(), apporder.QuickOrderRequest{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		UserID:        optionalUserID(c),
		GuestEmail:    req.GuestEmail,
		PaymentMethod: order.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// MyOrders godoc
// @Summary      My orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]apporder.OrderResponse}
// @Failure      401 {object} response.Response
// @Router       /public/orders/my-orders [get]
func (h *OrderHandler) MyOrders(c *gin.Context) {
	result, err := h.myOrdersUseCase.Execute(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// =========================================
// Admin
// =========================================

// List godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending | rejected | success"
// @Param        page   query int    false "page number" default(1)
// @Param        limit  query int    false "page size" default(10)
// @Success      200 {object} response.Response{data=apporder.OrderListResponse}
// @Failure      400 {object} response.Response
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var q dto.ListOrdersQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		Status: q.Status,
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "order id"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      404 {object} response.Response
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateStatus godoc
// @Summary      Change an order's status
// @Description  Moving to success decrements stock for every item, once
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                          true "order id"
// @Param        request body dto.UpdateOrderStatusRequest true "new status"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response "invalid status or insufficient stock"
// @Failure      404 {object} response.Response
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.updateStatusUseCase.Execute(c.Request.Context(), apporder.UpdateOrderStatusRequest{
		OrderID: id,
		Status:  order.Status(req.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete godoc
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "order id"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Order deleted"})
}

// Statistics godoc
// @Summary      Order dashboard
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=apporder.StatisticsResponse}
// @Router       /orders/statistics/dashboard [get]
func (h *OrderHandler) Statistics(c *gin.Context) {
	result, err := h.statisticsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func optionalUserID(c *gin.Context) *string {
	if id := middleware.GetUserID(c); id != "" {
		return &id
	}
	return nil
}
