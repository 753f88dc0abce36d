package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetAvailabilityCommandIsNotConstructed = errors.New(
	"SetAvailabilityCommand must be created via NewSetAvailabilityCommand constructor",
)

// SetAvailabilityCommand represents a courier toggling whether they are
// taking work.
type SetAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courierID   kernel.UUID
	isAvailable bool

	guard guard.ConstructorGuard
}

// NewSetAvailabilityCommand creates an availability toggle command.
func NewSetAvailabilityCommand(courierID kernel.UUID, isAvailable bool) (SetAvailabilityCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SetAvailabilityCommand{}, err
	}

	return SetAvailabilityCommand{
		courierID:   courierID,
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAvailabilityCommandIsNotConstructed)
}

// CourierID returns the toggling courier's identity.
func (c SetAvailabilityCommand) CourierID() kernel.UUID {
	return c.courierID
}

// IsAvailable returns the requested availability state.
func (c SetAvailabilityCommand) IsAvailable() bool {
	return c.isAvailable
}
