package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a courier attempting to become the exclusive
// assignee of a READY order. Claims race: of N concurrent claims on the same
// order exactly one succeeds and the rest observe a conflict.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a claim command for the given courier and order.
func NewClaimOrderCommand(courierID, orderID kernel.UUID) (ClaimOrderCommand, error) {
	if err := errors.Join(courierID.Validate(), orderID.Validate()); err != nil {
		return ClaimOrderCommand{}, err
	}

	return ClaimOrderCommand{
		courierID: courierID,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// CourierID returns the claiming courier's identity.
func (c ClaimOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

// OrderID returns the claimed order's identity.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
