package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/application/notifications"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ReportLocationCommandHandler stores a courier position in the ephemeral
// location cache and relays it to the customer of the courier's active order.
// A courier with no active order still gets their position cached; there is
// just nobody to relay it to.
type ReportLocationCommandHandler struct {
	uowFactory OrderUoWFactory
	locations  ports.LocationCache
	router     *notifications.Router
}

// NewReportLocationCommandHandler creates a handler for position reports.
func NewReportLocationCommandHandler(
	uowFactory OrderUoWFactory,
	locations ports.LocationCache,
	router *notifications.Router,
) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
		locations:  locations,
		router:     router,
	}
}

// Handle caches the position and, when the courier is on an active order,
// pushes it to that order's customer.
func (h ReportLocationCommandHandler) Handle(ctx context.Context, command ReportLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	h.locations.Set(command.CourierID(), command.Location(), time.Now().UTC())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	active, err := uow.OrderRepository().GetActiveByCourier(ctx, command.CourierID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	h.router.CourierLocation(active.CustomerID(), command.Location())
	return nil
}
