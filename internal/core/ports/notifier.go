package ports

import (
	"dispatch/internal/core/domain/model/kernel"
)

// Event names pushed over the realtime channel. The channel is a latency
// optimization only: every consumer can reconstruct current state via a pull
// query, so a missed push is never a correctness problem.
type Event string

const (
	// EventOrderUpdate carries a full order snapshot to the order's customer.
	EventOrderUpdate Event = "orderUpdate"
	// EventOrderStatusChange carries {orderId, status, timestamp}.
	EventOrderStatusChange Event = "orderStatusChange"
	// EventCourierLocation carries {lat, lng} to the active order's customer.
	EventCourierLocation Event = "courierLocation"
	// EventNewOrder carries a snapshot to the owning restaurant's channel.
	EventNewOrder Event = "newOrder"
	// EventNotification is the broadcast used for restaurant-agnostic signals
	// such as "a new order is ready for claiming".
	EventNotification Event = "notification"
)

// Notifier is the outbound side of the notification fabric. All pushes are
// fire-and-forget: pushing to an identity with no live channel is a no-op,
// and implementations must never block state transitions on delivery.
type Notifier interface {
	// PushToUser sends an event to the customer identity's live channel, if any.
	PushToUser(userID kernel.UUID, event Event, payload any)

	// PushToRestaurant sends an event to the restaurant's live channel, if any.
	PushToRestaurant(restaurantID kernel.UUID, event Event, payload any)

	// Broadcast fans an event out to every live channel.
	Broadcast(event Event, payload any)
}
