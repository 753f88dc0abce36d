package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/notifications"
	"dispatch/internal/core/domain/model/order"
)

// UpdateStatusCommandHandler is the administrative escape hatch for support
// operators. It accepts any target status, logging a warning when the move
// would not be legal through the normal lifecycle graph.
type UpdateStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	router     *notifications.Router
	logger     *slog.Logger
}

// NewUpdateStatusCommandHandler creates a handler for status overrides.
func NewUpdateStatusCommandHandler(
	uowFactory OrderUoWFactory,
	router *notifications.Router,
	logger *slog.Logger,
) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{
		uowFactory: uowFactory,
		router:     router,
		logger:     logger.With(slog.String("component", "update_status_handler")),
	}
}

// Handle forces the order into the requested status and pushes the change to
// the customer like any other transition.
func (h UpdateStatusCommandHandler) Handle(ctx context.Context, command UpdateStatusCommand) (*order.Order, error) {
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
	if !prev.CanTransitionTo(command.Status()) {
		h.logger.Warn("forcing status outside the lifecycle graph",
			slog.String("order_id", command.OrderID().String()),
			slog.String("from", prev.String()),
			slog.String("to", command.Status().String()))
	}

	if err = aggregate.ForceStatus(command.Status()); err != nil {
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
