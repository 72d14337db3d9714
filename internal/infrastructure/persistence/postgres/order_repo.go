package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xiebiao/blend/internal/domain/order"
	"github.com/xiebiao/blend/internal/domain/query"
	apperrors "github.com/xiebiao/blend/pkg/errors"
)

// orderRepository stores an order and its items as one aggregate. Reads
// preload the items to avoid N+1 queries.
type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create inserts the order and, through the has-many association, its items.
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isForeignKeyError(err) {
			return apperrors.BadRequest("Order references a product that does not exist")
		}
		return apperrors.Wrap(err, "failed to create order")
	}

	o.ID = model.ID
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := r.getDB(ctx).Preload("Items", orderItems).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "failed to find order")
	}
	return toOrderEntity(&model), nil
}

func (r *orderRepository) List(ctx context.Context, status order.Status, page query.Page) ([]*order.Order, int64, error) {
	var (
		models []OrderModel
		total  int64
	)

	db := r.getDB(ctx).Model(&OrderModel{})
	if status != "" {
		db = db.Where("status = ?", string(status))
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count orders")
	}

	err := applyPage(db.Preload("Items", orderItems).Order("created_at DESC").Order("id DESC"), page).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list orders")
	}
	return toOrderEntities(models), total, nil
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	var models []OrderModel
	err := r.getDB(ctx).Preload("Items", orderItems).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list user orders")
	}
	return toOrderEntities(models), nil
}

type statusTotalRow struct {
	Status  string
	Orders  int
	Revenue decimal.Decimal
}

type monthTotalRow struct {
	Month   string
	Orders  int
	Revenue decimal.Decimal
}

// Statistics runs two GROUP BY queries; no order row is loaded.
func (r *orderRepository) Statistics(ctx context.Context) (*order.Statistics, error) {
	db := r.getDB(ctx)

	var byStatus []statusTotalRow
	err := db.Model(&OrderModel{}).
		Select("status, COUNT(*) AS orders, SUM(total_price) AS revenue").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to aggregate orders by status")
	}

	var byMonth []monthTotalRow
	err = db.Model(&OrderModel{}).
		Select(monthExpr(db) + " AS month, COUNT(*) AS orders, SUM(total_price) AS revenue").
		Group("month").
		Order("month DESC").
		Scan(&byMonth).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to aggregate orders by month")
	}

	totals := make([]order.StatusTotal, len(byStatus))
	for i, row := range byStatus {
		totals[i] = order.StatusTotal{Status: order.Status(row.Status), Orders: row.Orders, Revenue: row.Revenue}
	}
	months := make([]order.MonthlyRevenue, len(byMonth))
	for i, row := range byMonth {
		months[i] = order.MonthlyRevenue{Month: row.Month, Orders: row.Orders, Revenue: row.Revenue}
	}
	return order.Summarize(totals, months), nil
}

// monthExpr formats created_at as a UTC YYYY-MM bucket in the dialect of db.
func monthExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM')"
	}
	return "strftime('%Y-%m', created_at)"
}

// UpdateStatus writes status and updated_at only.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status order.Status) error {
	result := r.getDB(ctx).Model(&OrderModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return order.NotFound(id)
	}
	return nil
}

// Delete removes the items explicitly so SQLite without foreign keys
// behaves like the cascading Postgres schema.
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItemModel{}).Error; err != nil {
			return apperrors.Wrap(err, "failed to delete order items")
		}
		result := tx.Delete(&OrderModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "failed to delete order")
		}
		if result.RowsAffected == 0 {
			return order.NotFound(id)
		}
		return nil
	})
}

func (r *orderRepository) getDB(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}

// orderItems keeps items in insertion order.
func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemModel{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
	}
	return &OrderModel{
		ID:              o.ID,
		CustomerName:    o.Customer.Name,
		CustomerSurname: o.Customer.Surname,
		CustomerAddress: o.Customer.Address,
		CustomerPhone:   o.Customer.Phone,
		CustomerEmail:   o.Customer.Email,
		PaymentMethod:   string(o.PaymentMethod),
		TotalPrice:      o.TotalPrice,
		Status:          string(o.Status),
		UserID:          o.UserID,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = order.OrderItem{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
	}
	return &order.Order{
		ID: m.ID,
		Customer: order.Customer{
			Name:    m.CustomerName,
			Surname: m.CustomerSurname,
			Address: m.CustomerAddress,
			Phone:   m.CustomerPhone,
			Email:   m.CustomerEmail,
		},
		PaymentMethod: order.PaymentMethod(m.PaymentMethod),
		Status:        order.Status(m.Status),
		Items:         items,
		TotalPrice:    m.TotalPrice,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toOrderEntities(models []OrderModel) []*order.Order {
	out := make([]*order.Order, len(models))
	for i := range models {
		out[i] = toOrderEntity(&models[i])
	}
	return out
}
