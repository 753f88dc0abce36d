package ports

import (
	"context"
	"time"
)

// OrderStatusChangedEvent is the durable record of a committed transition,
// published to the order-changed stream after the Order Store write succeeds.
type OrderStatusChangedEvent struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CourierID *string   `json:"courier_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderEventPublisher publishes order lifecycle events to the message bus.
// Publishing is best-effort side-channel work, never part of the transaction
// that committed the transition.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
}
