package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
)

// SetAvailabilityCommandHandler persists a courier's availability toggle.
// Availability does not gate claims; it only reflects what the courier app
// last reported.
type SetAvailabilityCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSetAvailabilityCommandHandler creates a handler for availability toggles.
func NewSetAvailabilityCommandHandler(uowFactory CourierUoWFactory) SetAvailabilityCommandHandler {
	return SetAvailabilityCommandHandler{uowFactory: uowFactory}
}

// Handle loads the courier, applies the toggle and commits.
func (h SetAvailabilityCommandHandler) Handle(
	ctx context.Context,
	command SetAvailabilityCommand,
) (*courier.Courier, error) {
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

	couriersRepo := uow.CourierRepository()

	aggregate, err := couriersRepo.Get(ctx, command.CourierID())
	if err != nil {
		return nil, err
	}

	aggregate.SetAvailability(command.IsAvailable())

	if err = couriersRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
