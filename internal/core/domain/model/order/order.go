package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrItemsAreRequired is returned when creating an order with no line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")

	// ErrCodeMismatch is returned by Deliver when the order carries a
	// confirmation code and the supplied value does not match exactly.
	// The order state is left untouched.
	ErrCodeMismatch = errs.NewValueIsInvalidError("confirmationCode")
)

// Item is one immutable order line captured at checkout. Prices are stored
// in minor currency units to avoid floating point drift.
type Item struct { //nolint:recvcheck //using for validation
	productID      kernel.UUID
	quantity       int
	unitPriceMinor int64

	guard guard.ConstructorGuard
}

// NewItem creates a validated order line.
func NewItem(productID kernel.UUID, quantity int, unitPriceMinor int64) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPriceMinor <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPriceMinor",
			fmt.Errorf("%d is not greater than 0", unitPriceMinor))
	}

	return Item{
		productID:      productID,
		quantity:       quantity,
		unitPriceMinor: unitPriceMinor,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// ProductID returns the ordered product's identity.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPriceMinor returns the unit price in minor currency units.
func (i Item) UnitPriceMinor() int64 {
	return i.unitPriceMinor
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(errors.New("Item must be created via NewItem constructor"))
}

// Order is the central aggregate: a food-delivery order moving between three
// independent actors. The aggregate owns the status state machine and the
// asymmetric write rights on it; the Order Store linearizes concurrent
// transitions with conditional writes keyed on the status a mutation was
// computed from.
//
// Invariants maintained here:
//   - status only moves along the guarded graph (see Status), except via
//     ForceStatus which exists for the administrative override path
//   - customerID and restaurantID are immutable after creation
//   - courierID is set exactly once, during a claim, and never while NEW
//   - each lifecycle timestamp is set exactly once and never retroactively
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	courierID    *kernel.UUID

	items            []Item
	confirmationCode string

	status Status

	createdAt   time.Time
	acceptedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order in status NEW on behalf of a customer.
// The item list must be non-empty and every item validated. An empty
// confirmationCode means delivery requires no code.
func NewOrder(id, customerID, restaurantID kernel.UUID, items []Item, confirmationCode string) (*Order, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), restaurantID.Validate()); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:               id,
		customerID:       customerID,
		restaurantID:     restaurantID,
		items:            items,
		confirmationCode: confirmationCode,
		status:           StatusNew,
		createdAt:        time.Now().UTC(),
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an order aggregate from persistence.
// It revalidates enum membership and the courier/status consistency rule
// (a NEW order can never have a courier) so corrupt rows fail loudly.
func RestoreOrder(
	id, customerID, restaurantID kernel.UUID,
	courierID *kernel.UUID,
	items []Item,
	confirmationCode string,
	status Status,
	createdAt time.Time,
	acceptedAt, pickedUpAt, deliveredAt *time.Time,
) (*Order, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), restaurantID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		if status == StatusNew {
			return nil, errs.NewValueIsInvalidErrorWithCause("courierId",
				errors.New("a NEW order cannot have a courier assigned"))
		}
	}

	return &Order{
		id:               id,
		customerID:       customerID,
		restaurantID:     restaurantID,
		courierID:        courierID,
		items:            items,
		confirmationCode: confirmationCode,
		status:           status,
		createdAt:        createdAt,
		acceptedAt:       acceptedAt,
		pickedUpAt:       pickedUpAt,
		deliveredAt:      deliveredAt,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's identity.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's identity.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the owning restaurant's identity.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// CourierID returns the assigned courier's identity, or nil before a claim.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// Items returns the immutable line items.
func (o *Order) Items() []Item {
	return o.items
}

// ConfirmationCode returns the delivery confirmation secret ("" when unset).
func (o *Order) ConfirmationCode() string {
	return o.confirmationCode
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the checkout time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AcceptedAt returns the claim time, or nil before a courier claimed the order.
func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

// PickedUpAt returns the pickup time, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveredAt returns the delivery time, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// IsActive reports whether the order is in a non-terminal status.
// A courier holding any active order may not claim another.
func (o *Order) IsActive() bool {
	return !o.status.IsTerminal()
}

// IsAssignedTo reports whether the given courier is the order's assignee.
func (o *Order) IsAssignedTo(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

// Accept records the restaurant accepting the order (NEW -> ACCEPTED).
func (o *Order) Accept() error {
	next, err := o.status.Accept()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Reject records the restaurant declining the order (NEW -> CANCELLED).
func (o *Order) Reject() error {
	next, err := o.status.Reject()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Ready marks the order ready for pickup ({ACCEPTED,PREPARING} -> READY).
// A claimed order cannot go back to READY: that would re-open the claim
// window and break the single-assignment rule.
func (o *Order) Ready() error {
	if o.courierID != nil {
		return errs.NewConflictError(errs.ConflictInvalidTransition,
			"order is already claimed by a courier")
	}
	next, err := o.status.Ready()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Cancel records a restaurant cancellation ({NEW,ACCEPTED} -> CANCELLED).
func (o *Order) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Claim assigns the order to a courier (READY -> ACCEPTED), setting the
// courier and acceptedAt exactly once.
//
// Claim arbitration between concurrent couriers is decided by the Order
// Store's compare-and-set; this method expresses the same rules for the
// in-memory aggregate and is what the conditional write persists.
func (o *Order) Claim(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil {
		return errs.NewConflictError(errs.ConflictOrderUnavailable,
			"order is already claimed by a courier")
	}

	next, err := o.status.Claim()
	if err != nil {
		return err
	}

	o.status = next
	o.courierID = &courierID
	o.acceptedAt = &at
	return nil
}

// Pickup records the assigned courier collecting the order (-> ON_ROUTE).
// A courier that is not the assignee is rejected before any state changes.
func (o *Order) Pickup(by kernel.UUID, at time.Time) error {
	if !o.IsAssignedTo(by) {
		return errs.NewForbiddenError("pickup: courier is not assigned to this order")
	}

	next, err := o.status.Pickup()
	if err != nil {
		return err
	}

	o.status = next
	o.pickedUpAt = &at
	return nil
}

// Deliver records the assigned courier completing the order (-> DELIVERED).
// When the order carries a confirmation code the supplied value must match
// exactly (case-sensitive); on mismatch ErrCodeMismatch is returned and no
// state changes, so the courier can retry with the correct code.
func (o *Order) Deliver(by kernel.UUID, confirmationCode string, at time.Time) error {
	if !o.IsAssignedTo(by) {
		return errs.NewForbiddenError("deliver: courier is not assigned to this order")
	}
	if o.confirmationCode != "" && o.confirmationCode != confirmationCode {
		return ErrCodeMismatch
	}

	next, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = next
	o.deliveredAt = &at
	return nil
}

// ForceStatus sets the status to any member of the enumerated set without
// consulting the transition graph. This is the administrative override path;
// callers are expected to log when the write skips a guarded edge.
func (o *Order) ForceStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
