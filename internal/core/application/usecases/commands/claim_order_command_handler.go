package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/application/notifications"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ClaimOrderCommandHandler arbitrates the courier claim protocol.
//
// The handler enforces two preconditions and one atomic effect:
//   - the claiming courier must exist
//   - the courier must hold zero non-terminal orders (read precondition,
//     Conflict ACTIVE_ORDER_EXISTS otherwise)
//   - the claim itself is a single compare-and-set in the Order Store; losing
//     the race yields Conflict ORDER_UNAVAILABLE
//
// Losers must not retry the same order id; the correct reaction is to
// re-fetch the available-orders list.
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
	router     *notifications.Router
}

// NewClaimOrderCommandHandler creates a handler for courier claims.
func NewClaimOrderCommandHandler(uowFactory UoWFactory, router *notifications.Router) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		router:     router,
	}
}

// Handle processes the claim and, on success, pushes the new status and a
// full snapshot to the order's customer.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, command ClaimOrderCommand) (*order.Order, error) {
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

	if _, err := uow.CourierRepository().Get(ctx, command.CourierID()); err != nil {
		return nil, err
	}

	ordersRepo := uow.OrderRepository()

	active, err := ordersRepo.CountActiveByCourier(ctx, command.CourierID())
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, errs.NewConflictError(errs.ConflictActiveOrderExists,
			fmt.Sprintf("courier %s already has an active order", command.CourierID()))
	}

	if err = ordersRepo.Claim(ctx, command.OrderID(), command.CourierID(), time.Now().UTC()); err != nil {
		return nil, err
	}

	claimed, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.router.OrderStatusChanged(claimed)
	return claimed, nil
}
