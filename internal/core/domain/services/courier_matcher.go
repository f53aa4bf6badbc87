package services

import (
	"errors"
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/samber/lo"
)

// ErrNoCourierAvailable is a normal matching outcome: the order stays ready
// and unmatched until the next attempt.
var ErrNoCourierAvailable = errors.New("no courier available")

// Metric selects how distance to the pickup point is measured.
type Metric string

const (
	// Planar is Euclidean distance on raw degrees; the radius is in degrees.
	Planar Metric = "planar"
	// Haversine is great-circle distance; the radius is in kilometers.
	Haversine Metric = "haversine"
)

const (
	DefaultPlanarRadius    = 0.05
	DefaultHaversineRadius = 5.0
)

// Candidate is an available courier and its distance to the pickup point,
// in the unit of the matcher's metric.
type Candidate struct {
	Courier  *courier.Courier
	Distance float64
}

// CourierMatcher ranks available couriers by proximity to a pickup point.
// Reserving the winner is the caller's job: it must claim candidates in rank
// order and move on when a claim is lost to a concurrent pass.
type CourierMatcher struct {
	metric Metric
	radius float64
}

func NewCourierMatcher(metric Metric, radius float64) (CourierMatcher, error) {
	if metric != Planar && metric != Haversine {
		return CourierMatcher{}, errs.NewValueIsInvalidErrorWithCause("metric", fmt.Errorf("%q is not planar or haversine", metric))
	}
	if radius <= 0 {
		return CourierMatcher{}, errs.NewValueIsOutOfRangeError("radius", radius, "> 0", "+Inf")
	}
	return CourierMatcher{metric: metric, radius: radius}, nil
}

// NewDefaultCourierMatcher uses planar distance within 0.05 degrees, about 5 km.
func NewDefaultCourierMatcher() CourierMatcher {
	return CourierMatcher{metric: Planar, radius: DefaultPlanarRadius}
}

func (m CourierMatcher) Radius() float64 { return m.radius }
func (m CourierMatcher) Metric() Metric  { return m.metric }

// Rank returns the available couriers strictly inside the radius, nearest
// first, ties broken by courier id. It returns ErrNoCourierAvailable when
// nobody qualifies.
func (m CourierMatcher) Rank(pickup kernel.Location, couriers []*courier.Courier) ([]Candidate, error) {
	if err := pickup.Validate(); err != nil {
		return nil, err
	}
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	candidates := lo.FilterMap(couriers, func(c *courier.Courier, _ int) (Candidate, bool) {
		if !c.IsAvailable() {
			return Candidate{}, false
		}
		dist := m.distance(pickup, *c.Location())
		return Candidate{Courier: c, Distance: dist}, dist < m.radius
	})

	if len(candidates) == 0 {
		return nil, ErrNoCourierAvailable
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		return candidates[i].Courier.ID().Less(candidates[j].Courier.ID())
	})

	return candidates, nil
}

func (m CourierMatcher) distance(a, b kernel.Location) float64 {
	if m.metric == Haversine {
		return a.HaversineKm(b)
	}
	return a.PlanarDistance(b)
}
