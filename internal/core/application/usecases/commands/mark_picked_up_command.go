package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand represents the assigned courier reporting that the food
// left the restaurant.
type MarkPickedUpCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a pickup command for the given courier and order.
func NewMarkPickedUpCommand(courierID, orderID kernel.UUID) (MarkPickedUpCommand, error) {
	if err := errors.Join(courierID.Validate(), orderID.Validate()); err != nil {
		return MarkPickedUpCommand{}, err
	}

	return MarkPickedUpCommand{
		courierID: courierID,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}

// CourierID returns the reporting courier's identity.
func (c MarkPickedUpCommand) CourierID() kernel.UUID {
	return c.courierID
}

// OrderID returns the picked-up order's identity.
func (c MarkPickedUpCommand) OrderID() kernel.UUID {
	return c.orderID
}
