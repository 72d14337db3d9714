package order

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Routing keys of the order events.
const (
	RoutingKeyOrderCreated       = "order.created"
	RoutingKeyOrderStatusChanged = "order.status_changed"
)

// EventPublisher delivers domain events to the broker. *mq.Publisher
// implements it.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// NopPublisher drops every event. It is used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

type OrderCreatedEvent struct {
	OrderID    uint      `json:"orderId"`
	UserID     *string   `json:"userId,omitempty"`
	TotalPrice string    `json:"totalPrice"`
	Items      int       `json:"items"`
	CreatedAt  time.Time `json:"createdAt"`
}

type OrderStatusChangedEvent struct {
	OrderID   uint      `json:"orderId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changedAt"`
}

// publish sends an event after the write has committed. A broker failure
// never fails the request.
func publish(ctx context.Context, p EventPublisher, log *zap.Logger, routingKey string, event interface{}) {
	if err := p.Publish(ctx, routingKey, event); err != nil {
		log.Warn("failed to publish order event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
