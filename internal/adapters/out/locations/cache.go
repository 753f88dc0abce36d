// Package locations holds courier positions in process memory. Positions are
// transient telemetry: losing them on restart costs nothing because couriers
// re-report within seconds.
package locations

import (
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

type entry struct {
	location kernel.Location
	at       time.Time
}

// Cache is an in-memory implementation of ports.LocationCache.
// Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[kernel.UUID]entry
}

// NewCache creates an empty location cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[kernel.UUID]entry)}
}

// Set records the courier's last known position, replacing any previous one.
func (c *Cache) Set(courierID kernel.UUID, location kernel.Location, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[courierID] = entry{location: location, at: at}
}

// Get returns the courier's last known position and when it was reported.
func (c *Cache) Get(courierID kernel.UUID) (kernel.Location, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[courierID]
	if !ok {
		return kernel.Location{}, time.Time{}, false
	}
	return e.location, e.at, true
}

// PruneOlderThan drops entries reported before the cutoff and returns how
// many were removed.
func (c *Cache) PruneOlderThan(cutoff time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, e := range c.entries {
		if e.at.Before(cutoff) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}
