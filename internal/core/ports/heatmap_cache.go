package ports

import (
	"context"
	"time"
)

// HeatPoint is one demand cell: a rounded position and an intensity in [0, 1].
type HeatPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity float64 `json:"intensity"`
}

// HeatmapCache stores the periodically refreshed demand snapshot.
type HeatmapCache interface {
	// Load reports false when no snapshot is stored.
	Load(ctx context.Context) ([]HeatPoint, bool, error)
	Store(ctx context.Context, points []HeatPoint, ttl time.Duration) error
}
