package ports

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// LocationCache holds the last known position per courier. Positions are
// ephemeral: they are never persisted to order history, and stale entries
// are expired by a housekeeping job.
type LocationCache interface {
	// Set records the courier's last known position.
	Set(courierID kernel.UUID, location kernel.Location, at time.Time)

	// Get returns the courier's last known position and when it was reported.
	Get(courierID kernel.UUID) (kernel.Location, time.Time, bool)

	// PruneOlderThan drops entries reported before the cutoff and returns
	// how many were removed.
	PruneOlderThan(cutoff time.Time) int
}
