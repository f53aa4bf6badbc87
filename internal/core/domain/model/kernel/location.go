package kernel

import (
	"errors"
	"fmt"
	"math"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// EarthRadiusKm is the mean radius used by HaversineKm.
	EarthRadiusKm = 6371.0
)

var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation")

// Location is a WGS84 coordinate pair used for courier positions, vendor
// pickup points and delivery addresses.
//
// Example:
//
//	pickup, err := kernel.NewLocation(6.4281, 3.4219)
//	if err != nil {
//	    return err
//	}
//	km := pickup.HaversineKm(courierPosition)
type Location struct {
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation validates both coordinates and reports every violation at once.
func NewLocation(lat, lng float64) (Location, error) {
	l := Location{}
	if err := errors.Join(l.setLat(lat), l.setLng(lng)); err != nil {
		return Location{}, err
	}
	l.guard = guard.NewConstructorGuard()
	return l, nil
}

// MustNewLocation is NewLocation for literals known to be valid.
func MustNewLocation(lat, lng float64) Location {
	l, err := NewLocation(lat, lng)
	if err != nil {
		panic(err)
	}
	return l
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Lat() float64 {
	return l.lat
}

func (l Location) Lng() float64 {
	return l.lng
}

func (l Location) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", l.lat, l.lng)
}

func (l Location) IsEqual(other Location) bool {
	return l.lat == other.lat && l.lng == other.lng
}

// PlanarDistance is the Euclidean distance between raw degree values.
// It is only meaningful for short, city-scale distances.
func (l Location) PlanarDistance(other Location) float64 {
	return math.Hypot(l.lat-other.lat, l.lng-other.lng)
}

// HaversineKm is the great-circle distance in kilometers.
func (l Location) HaversineKm(other Location) float64 {
	dLat := toRadians(other.lat - l.lat)
	dLng := toRadians(other.lng - l.lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(l.lat))*math.Cos(toRadians(other.lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, MinLatitude, MaxLatitude)
	}
	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("lng", lng, MinLongitude, MaxLongitude)
	}
	l.lng = lng
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
