package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with defined transitions so orders follow the delivery workflow.
//
// Guarded transitions (the actor holding write authority in parentheses):
//
//	NEW ──accept──> ACCEPTED ──ready──> READY ──claim──> ACCEPTED(claimed)
//	 │                  │                                      │
//	 │reject            │cancel                                │pickup
//	 v                  v                                      v
//	CANCELLED <─────────┘                                  ON_ROUTE ──deliver──> DELIVERED
//
// accept/reject/ready/cancel belong to the restaurant, claim to any idle
// courier, pickup/deliver to the assigned courier only. PREPARING is a
// display alias between ACCEPTED and READY; no guarded transition produces
// it, but ready accepts it as a source. PICKED_UP is a member of the status
// set reachable only through the administrative override path.
type Status string

const (
	// StatusNew is the initial status of every order at checkout.
	StatusNew Status = "NEW"

	// StatusAccepted means the restaurant accepted the order. The same status
	// with a courier assigned means a courier claimed the order.
	StatusAccepted Status = "ACCEPTED"

	// StatusPreparing is a display alias used by restaurant dashboards
	// between acceptance and readiness.
	StatusPreparing Status = "PREPARING"

	// StatusReady means the order awaits a courier claim.
	StatusReady Status = "READY"

	// StatusPickedUp exists in the enumerated set for operator overrides;
	// the guarded pickup transition goes straight to ON_ROUTE.
	StatusPickedUp Status = "PICKED_UP"

	// StatusOnRoute means the assigned courier picked the order up.
	StatusOnRoute Status = "ON_ROUTE"

	// StatusDelivered is a terminal status.
	StatusDelivered Status = "DELIVERED"

	// StatusCancelled is a terminal status.
	StatusCancelled Status = "CANCELLED"
)

func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		StatusNew:       {},
		StatusAccepted:  {},
		StatusPreparing: {},
		StatusReady:     {},
		StatusPickedUp:  {},
		StatusOnRoute:   {},
		StatusDelivered: {},
		StatusCancelled: {},
	}
}

// guardedEdges is the transition graph enforced by the Dispatch Engine.
// The administrative status override bypasses it.
func guardedEdges() map[Status][]Status {
	return map[Status][]Status{
		StatusNew:       {StatusAccepted, StatusCancelled},
		StatusAccepted:  {StatusReady, StatusCancelled, StatusOnRoute},
		StatusPreparing: {StatusReady},
		StatusReady:     {StatusAccepted},
		StatusOnRoute:   {StatusDelivered},
	}
}

// Validate checks enum membership. The empty string and any unknown value
// are invalid.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the guarded graph contains the edge s→to.
// Used to detect (and log) administrative overrides that skip the graph.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range guardedEdges()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

func (s Status) invalidTransition(action string) error {
	return errs.NewConflictError(errs.ConflictInvalidTransition,
		fmt.Sprintf("cannot %s an order in status %s", action, s))
}

// Accept transitions NEW -> ACCEPTED (restaurant accepts the order).
func (s Status) Accept() (Status, error) {
	if s != StatusNew {
		return "", s.invalidTransition("accept")
	}
	return StatusAccepted, nil
}

// Reject transitions NEW -> CANCELLED (restaurant declines the order).
func (s Status) Reject() (Status, error) {
	if s != StatusNew {
		return "", s.invalidTransition("reject")
	}
	return StatusCancelled, nil
}

// Ready transitions ACCEPTED or PREPARING -> READY. Calling ready on an
// already READY order is a conflict, not an idempotent success.
func (s Status) Ready() (Status, error) {
	if s != StatusAccepted && s != StatusPreparing {
		return "", s.invalidTransition("ready")
	}
	return StatusReady, nil
}

// Cancel transitions NEW or ACCEPTED -> CANCELLED.
func (s Status) Cancel() (Status, error) {
	if s != StatusNew && s != StatusAccepted {
		return "", s.invalidTransition("cancel")
	}
	return StatusCancelled, nil
}

// Claim transitions READY -> ACCEPTED for a courier claim. The winning claim
// is decided by the Order Store's conditional write, not by this method alone.
func (s Status) Claim() (Status, error) {
	if s != StatusReady {
		return "", errs.NewConflictError(errs.ConflictOrderUnavailable,
			fmt.Sprintf("cannot claim an order in status %s", s))
	}
	return StatusAccepted, nil
}

// Pickup transitions a claimed ACCEPTED order -> ON_ROUTE.
func (s Status) Pickup() (Status, error) {
	if s != StatusAccepted {
		return "", s.invalidTransition("pick up")
	}
	return StatusOnRoute, nil
}

// Deliver transitions ON_ROUTE -> DELIVERED.
func (s Status) Deliver() (Status, error) {
	if s != StatusOnRoute {
		return "", s.invalidTransition("deliver")
	}
	return StatusDelivered, nil
}
