// Package notifications contains the Notification Router: the component that
// translates committed Dispatch Engine transitions into targeted or broadcast
// pushes and into durable order-changed events.
//
// The router runs strictly after the Order Store commit. Push and publish
// failures are swallowed and logged, never surfaced to the caller of the
// state-changing operation: the commit is the authoritative outcome, and any
// consumer that missed a push recovers by pulling current state.
package notifications

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

const publishTimeout = 5 * time.Second

// OrderSnapshot is the order view pushed over the realtime channel.
// The confirmation code is a secret shared with the customer out of band and
// never leaves the write path.
type OrderSnapshot struct {
	ID           string         `json:"id"`
	CustomerID   string         `json:"customerId"`
	RestaurantID string         `json:"restaurantId"`
	CourierID    *string        `json:"courierId,omitempty"`
	Status       string         `json:"status"`
	Items        []ItemSnapshot `json:"items"`
	CreatedAt    time.Time      `json:"createdAt"`
	AcceptedAt   *time.Time     `json:"acceptedAt,omitempty"`
	PickedUpAt   *time.Time     `json:"pickedUpAt,omitempty"`
	DeliveredAt  *time.Time     `json:"deliveredAt,omitempty"`
}

// ItemSnapshot is one order line in a pushed snapshot.
type ItemSnapshot struct {
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	UnitPriceMinor int64  `json:"unitPriceMinor"`
}

// StatusChangePayload is the compact body of an orderStatusChange event.
type StatusChangePayload struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// LocationPayload is the body of a courierLocation event.
type LocationPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ReadyNoticePayload is broadcast when an order becomes claimable. Couriers
// react by pulling the available-orders list; the notice itself carries just
// enough to be worth waking up for.
type ReadyNoticePayload struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// SnapshotOf maps an order aggregate to its pushable view.
func SnapshotOf(o *order.Order) OrderSnapshot {
	items := make([]ItemSnapshot, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemSnapshot{
			ProductID:      item.ProductID().String(),
			Quantity:       item.Quantity(),
			UnitPriceMinor: item.UnitPriceMinor(),
		})
	}

	var courierID *string
	if id := o.CourierID(); id != nil {
		s := id.String()
		courierID = &s
	}

	return OrderSnapshot{
		ID:           o.ID().String(),
		CustomerID:   o.CustomerID().String(),
		RestaurantID: o.RestaurantID().String(),
		CourierID:    courierID,
		Status:       o.Status().String(),
		Items:        items,
		CreatedAt:    o.CreatedAt(),
		AcceptedAt:   o.AcceptedAt(),
		PickedUpAt:   o.PickedUpAt(),
		DeliveredAt:  o.DeliveredAt(),
	}
}

// Router fans committed order events out to the live channels of the affected
// actors and onto the order-changed stream.
type Router struct {
	notifier ports.Notifier
	events   ports.OrderEventPublisher
	logger   *slog.Logger
}

// NewRouter creates a Notification Router. events may be nil when no message
// bus is configured; stream publishing is then skipped entirely.
func NewRouter(notifier ports.Notifier, events ports.OrderEventPublisher, logger *slog.Logger) *Router {
	return &Router{
		notifier: notifier,
		events:   events,
		logger:   logger.With("component", "notification_router"),
	}
}

// OrderCreated notifies the owning restaurant about a freshly placed order.
func (r *Router) OrderCreated(o *order.Order) {
	r.notifier.PushToRestaurant(o.RestaurantID(), ports.EventNewOrder, SnapshotOf(o))
	r.publish(o)
}

// OrderStatusChanged notifies the order's customer about a committed
// transition with both the compact status event and a full snapshot.
func (r *Router) OrderStatusChanged(o *order.Order) {
	r.notifier.PushToUser(o.CustomerID(), ports.EventOrderStatusChange, StatusChangePayload{
		OrderID:   o.ID().String(),
		Status:    o.Status().String(),
		Timestamp: time.Now().UTC(),
	})
	r.notifier.PushToUser(o.CustomerID(), ports.EventOrderUpdate, SnapshotOf(o))
	r.publish(o)
}

// OrderReady additionally broadcasts a claim notice so idle couriers know to
// pull the available-orders list. Couriers are not targeted individually:
// many are not registered on the fabric at all.
func (r *Router) OrderReady(o *order.Order) {
	r.OrderStatusChanged(o)
	r.notifier.Broadcast(ports.EventNotification, ReadyNoticePayload{
		OrderID: o.ID().String(),
		Message: "order ready for pickup",
	})
}

// CourierLocation forwards a courier position report to the customer of the
// courier's active order.
func (r *Router) CourierLocation(customerID kernel.UUID, location kernel.Location) {
	r.notifier.PushToUser(customerID, ports.EventCourierLocation, LocationPayload{
		Lat: location.Lat(),
		Lng: location.Lng(),
	})
}

func (r *Router) publish(o *order.Order) {
	if r.events == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	event := ports.OrderStatusChangedEvent{
		OrderID:   o.ID().String(),
		Status:    o.Status().String(),
		Timestamp: time.Now().UTC(),
	}
	if id := o.CourierID(); id != nil {
		s := id.String()
		event.CourierID = &s
	}

	if err := r.events.PublishStatusChanged(ctx, event); err != nil {
		r.logger.WarnContext(ctx, "Failed to publish order status change",
			"order_id", event.OrderID, "status", event.Status, "error", err)
	}
}
