package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a customer placing an order at checkout.
// The optional confirmation code is the secret the courier must present at
// delivery; an empty string means delivery needs no code.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customerID       kernel.UUID
	restaurantID     kernel.UUID
	items            []order.Item
	confirmationCode string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Items must already be validated order.Item value objects.
func NewCreateOrderCommand(
	orderID, customerID, restaurantID kernel.UUID,
	items []order.Item,
	confirmationCode string,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		restaurantID.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	if len(items) == 0 {
		return CreateOrderCommand{}, order.ErrItemsAreRequired
	}

	return CreateOrderCommand{
		orderID:          orderID,
		customerID:       customerID,
		restaurantID:     restaurantID,
		items:            items,
		confirmationCode: confirmationCode,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identity the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's identity.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the target restaurant's identity.
func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Items returns the validated order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// ConfirmationCode returns the delivery secret ("" when unset).
func (c CreateOrderCommand) ConfirmationCode() string {
	return c.confirmationCode
}
