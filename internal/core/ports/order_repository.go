package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The Order Store row is the single source of truth for order status; every
// mutating method is a conditional write so no transition can commit from a
// stale read.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists an aggregate whose status was advanced in memory.
	// The write is conditional on the row still holding expectedStatus AND
	// the courier assignment the transition was computed from; a concurrent
	// transition that got there first surfaces as a conflict. Status alone
	// is not enough to detect staleness: a claim's target status equals
	// ready's source status, and only the courier column tells a claimed
	// ACCEPTED order apart from an unclaimed one.
	Update(ctx context.Context, aggregate *order.Order, expectedStatus order.Status, expectedCourierID *kernel.UUID) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Claim is the courier-claim compare-and-set: one conditional write that
	// assigns the courier, stamps acceptedAt, and moves READY to ACCEPTED iff
	// the order is still READY and unclaimed. Exactly one concurrent caller
	// can succeed; losers receive a conflict with code ORDER_UNAVAILABLE.
	Claim(ctx context.Context, orderID, courierID kernel.UUID, at time.Time) error

	// CountActiveByCourier counts the courier's orders in non-terminal status.
	CountActiveByCourier(ctx context.Context, courierID kernel.UUID) (int64, error)

	// GetActiveByCourier retrieves the courier's current non-terminal order.
	GetActiveByCourier(ctx context.Context, courierID kernel.UUID) (*order.Order, error)
}
