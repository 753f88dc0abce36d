package commands

import (
	"context"
	"time"

	"dispatch/internal/core/application/notifications"
	"dispatch/internal/core/domain/model/order"
)

// MarkDeliveredCommandHandler completes an order's lifecycle. The aggregate
// checks assignee ownership first and then the confirmation code, so a wrong
// code never leaks whether the caller owns the order.
type MarkDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
	router     *notifications.Router
}

// NewMarkDeliveredCommandHandler creates a handler for delivery completion.
func NewMarkDeliveredCommandHandler(uowFactory OrderUoWFactory, router *notifications.Router) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		router:     router,
	}
}

// Handle records the delivery and pushes the terminal status to the customer.
// A code mismatch returns a validation error and leaves the order ON_ROUTE so
// the courier can retry with the correct code.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, command MarkDeliveredCommand) (*order.Order, error) {
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
	if err = aggregate.Deliver(command.CourierID(), command.ConfirmationCode(), time.Now().UTC()); err != nil {
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
