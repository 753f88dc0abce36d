package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// TransitionAction names the lifecycle moves a restaurant may request on its
// own orders.
type TransitionAction string

const (
	ActionAccept TransitionAction = "accept"
	ActionReject TransitionAction = "reject"
	ActionReady  TransitionAction = "ready"
	ActionCancel TransitionAction = "cancel"
)

// Validate checks the action is one of the known restaurant moves.
func (a TransitionAction) Validate() error {
	switch a {
	case ActionAccept, ActionReject, ActionReady, ActionCancel:
		return nil
	}
	return errs.NewValueIsInvalidError("action")
}

var ErrRestaurantTransitionCommandIsNotConstructed = errors.New(
	"RestaurantTransitionCommand must be created via NewRestaurantTransitionCommand constructor",
)

// RestaurantTransitionCommand represents a restaurant driving one of its own
// orders through the kitchen-side part of the lifecycle.
type RestaurantTransitionCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	orderID      kernel.UUID
	action       TransitionAction

	guard guard.ConstructorGuard
}

// NewRestaurantTransitionCommand creates a transition command for the given
// restaurant, order and action.
func NewRestaurantTransitionCommand(
	restaurantID, orderID kernel.UUID,
	action TransitionAction,
) (RestaurantTransitionCommand, error) {
	if err := errors.Join(
		restaurantID.Validate(),
		orderID.Validate(),
		action.Validate(),
	); err != nil {
		return RestaurantTransitionCommand{}, err
	}

	return RestaurantTransitionCommand{
		restaurantID: restaurantID,
		orderID:      orderID,
		action:       action,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RestaurantTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRestaurantTransitionCommandIsNotConstructed)
}

// RestaurantID returns the acting restaurant's identity.
func (c RestaurantTransitionCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// OrderID returns the target order's identity.
func (c RestaurantTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the requested lifecycle move.
func (c RestaurantTransitionCommand) Action() TransitionAction {
	return c.action
}
