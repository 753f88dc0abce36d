package commands

import (
	"context"

	"dispatch/internal/core/application/notifications"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// RestaurantTransitionCommandHandler applies accept, reject, ready and cancel
// on behalf of a restaurant. An order belonging to a different restaurant is
// rejected with a forbidden error before the transition is attempted.
type RestaurantTransitionCommandHandler struct {
	uowFactory OrderUoWFactory
	router     *notifications.Router
}

// NewRestaurantTransitionCommandHandler creates a handler for restaurant
// lifecycle moves.
func NewRestaurantTransitionCommandHandler(
	uowFactory OrderUoWFactory,
	router *notifications.Router,
) RestaurantTransitionCommandHandler {
	return RestaurantTransitionCommandHandler{
		uowFactory: uowFactory,
		router:     router,
	}
}

// Handle applies the requested transition, commits, and pushes the change to
// the customer. A ready transition additionally announces the order to every
// connected courier.
func (h RestaurantTransitionCommandHandler) Handle(
	ctx context.Context,
	command RestaurantTransitionCommand,
) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if !aggregate.RestaurantID().IsEqual(command.RestaurantID()) {
		return nil, errs.NewForbiddenError("order belongs to another restaurant")
	}

	prev := aggregate.Status()
	prevCourier := aggregate.CourierID()
	switch command.Action() {
	case ActionAccept:
		err = aggregate.Accept()
	case ActionReject:
		err = aggregate.Reject()
	case ActionReady:
		err = aggregate.Ready()
	case ActionCancel:
		err = aggregate.Cancel()
	}
	if err != nil {
		return nil, err
	}

	if err = ordersRepo.Update(ctx, aggregate, prev, prevCourier); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if command.Action() == ActionReady {
		h.router.OrderReady(aggregate)
	} else {
		h.router.OrderStatusChanged(aggregate)
	}
	return aggregate, nil
}
