package commands

import (
	"context"

	"dispatch/internal/core/application/notifications"
	"dispatch/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists a new order in status NEW and notifies
// the owning restaurant over its live channel.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	router     *notifications.Router
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, router *notifications.Router) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		router:     router,
	}
}

// Handle creates the order aggregate, commits it, and only then triggers the
// restaurant push. A push failure can no longer affect the committed order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		command.OrderID(),
		command.CustomerID(),
		command.RestaurantID(),
		command.Items(),
		command.ConfirmationCode(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.router.OrderCreated(newOrder)
	return newOrder, nil
}
