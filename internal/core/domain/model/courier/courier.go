// Package courier defines the courier aggregate. Couriers are external
// identities as far as authentication goes; the only domain state kept for
// them is the display name and the availability flag couriers toggle when
// they go on or off shift. Position reports are ephemeral and live outside
// the aggregate entirely.
package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when creating a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly
	// initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructor")
)

// Courier represents a delivery courier.
//
// Availability is advisory: it controls whether the courier intends to take
// work, while the actual exclusivity rule (one active order per courier) is
// enforced by the claim protocol against the Order Store.
type Courier struct {
	id          kernel.UUID
	name        string
	isAvailable bool

	guard guard.ConstructorGuard
}

// NewCourier creates a courier that starts available.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}

	return &Courier{
		id:          id,
		name:        name,
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreCourier reconstructs a courier aggregate from persistence.
func RestoreCourier(id kernel.UUID, name string, isAvailable bool) (*Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}

	return &Courier{
		id:          id,
		name:        name,
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the courier was built through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier's identity.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// IsAvailable reports whether the courier is on shift.
func (c *Courier) IsAvailable() bool {
	return c.isAvailable
}

// SetAvailability toggles the courier's on-shift flag.
func (c *Courier) SetAvailability(isAvailable bool) {
	c.isAvailable = isAvailable
}
