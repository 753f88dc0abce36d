package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateStatusCommandIsNotConstructed = errors.New(
	"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
)

// UpdateStatusCommand represents an administrative override that sets an
// order's status directly, skipping the lifecycle graph.
type UpdateStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewUpdateStatusCommand creates an override command for the given order and
// target status.
func NewUpdateStatusCommand(orderID kernel.UUID, status order.Status) (UpdateStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return UpdateStatusCommand{}, err
	}

	return UpdateStatusCommand{
		orderID: orderID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

// OrderID returns the target order's identity.
func (c UpdateStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the status to force.
func (c UpdateStatusCommand) Status() order.Status {
	return c.status
}
