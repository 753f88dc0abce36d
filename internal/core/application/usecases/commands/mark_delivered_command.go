package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand represents the assigned courier completing delivery.
// The confirmation code is compared against the one stored on the order; a
// mismatch fails the command without changing the order.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	courierID        kernel.UUID
	orderID          kernel.UUID
	confirmationCode string

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a delivery command.
func NewMarkDeliveredCommand(courierID, orderID kernel.UUID, confirmationCode string) (MarkDeliveredCommand, error) {
	if err := errors.Join(courierID.Validate(), orderID.Validate()); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return MarkDeliveredCommand{
		courierID:        courierID,
		orderID:          orderID,
		confirmationCode: confirmationCode,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// CourierID returns the reporting courier's identity.
func (c MarkDeliveredCommand) CourierID() kernel.UUID {
	return c.courierID
}

// OrderID returns the delivered order's identity.
func (c MarkDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ConfirmationCode returns the code the courier presented.
func (c MarkDeliveredCommand) ConfirmationCode() string {
	return c.confirmationCode
}
