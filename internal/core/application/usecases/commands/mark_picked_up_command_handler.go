package commands

import (
	"context"
	"time"

	"dispatch/internal/core/application/notifications"
	"dispatch/internal/core/domain/model/order"
)

// MarkPickedUpCommandHandler moves an order to ON_ROUTE on behalf of its
// assigned courier. A courier other than the assignee is rejected with a
// forbidden error before any state is touched.
type MarkPickedUpCommandHandler struct {
	uowFactory OrderUoWFactory
	router     *notifications.Router
}

// NewMarkPickedUpCommandHandler creates a handler for pickup reports.
func NewMarkPickedUpCommandHandler(uowFactory OrderUoWFactory, router *notifications.Router) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{
		uowFactory: uowFactory,
		router:     router,
	}
}

// Handle records the pickup and pushes the status change to the customer.
func (h MarkPickedUpCommandHandler) Handle(ctx context.Context, command MarkPickedUpCommand) (*order.Order, error) {
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

	prev := aggregate.Status()
	prevCourier := aggregate.CourierID()
	if err = aggregate.Pickup(command.CourierID(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = ordersRepo.Update(ctx, aggregate, prev, prevCourier); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.router.OrderStatusChanged(aggregate)
	return aggregate, nil
}
