package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// LocationMinLat is the minimum valid latitude in degrees.
	LocationMinLat = -90.0
	// LocationMaxLat is the maximum valid latitude in degrees.
	LocationMaxLat = 90.0
	// LocationMinLng is the minimum valid longitude in degrees.
	LocationMinLng = -180.0
	// LocationMaxLng is the maximum valid longitude in degrees.
	LocationMaxLng = 180.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an
// improperly initialized Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via the NewLocation constructor")

// Location is a geographic point reported by a courier. It is an immutable
// value object with validated coordinates; the zero value is invalid.
//
// Locations are ephemeral: they flow from courier position reports to the
// customer's realtime channel and are never persisted to order history.
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation creates a Location from latitude/longitude degrees.
// Returns an out-of-range error when either coordinate is outside the
// WGS84 bounds.
func NewLocation(lat, lng float64) (Location, error) {
	if lat < LocationMinLat || lat > LocationMaxLat {
		return Location{}, errs.NewValueIsOutOfRangeError("lat", lat, LocationMinLat, LocationMaxLat)
	}
	if lng < LocationMinLng || lng > LocationMaxLng {
		return Location{}, errs.NewValueIsOutOfRangeError("lng", lng, LocationMinLng, LocationMaxLng)
	}

	return Location{
		lat:   lat,
		lng:   lng,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in degrees.
func (l Location) Lng() float64 {
	return l.lng
}

// IsEqual reports whether both locations denote the same coordinates.
func (l Location) IsEqual(other Location) bool {
	return l.lat == other.lat && l.lng == other.lng
}

// String implements fmt.Stringer for logging.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lng)
}

// Validate ensures the location was built through NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}
