package queries

import (
	"context"

	"fulfillment/internal/core/ports"

	"github.com/sirupsen/logrus"
)

// fallbackHeatmap is served while no snapshot has been computed yet.
var fallbackHeatmap = []ports.HeatPoint{
	{Lat: 6.4253, Lng: 3.4000, Intensity: 0.9},
	{Lat: 6.4300, Lng: 3.4100, Intensity: 0.8},
	{Lat: 6.4500, Lng: 3.4500, Intensity: 0.7},
	{Lat: 6.4400, Lng: 3.4200, Intensity: 0.6},
	{Lat: 6.4550, Lng: 3.4300, Intensity: 0.5},
}

type GetHeatmapQueryHandler struct {
	cache  ports.HeatmapCache
	logger logrus.FieldLogger
}

func NewGetHeatmapQueryHandler(cache ports.HeatmapCache, logger logrus.FieldLogger) GetHeatmapQueryHandler {
	return GetHeatmapQueryHandler{cache: cache, logger: logger.WithField("component", "heatmap")}
}

// Handle never fails: a missing or unreadable snapshot falls back to the
// static points.
func (h GetHeatmapQueryHandler) Handle(ctx context.Context) []ports.HeatPoint {
	points, ok, err := h.cache.Load(ctx)
	if err != nil {
		h.logger.WithError(err).Warn("heatmap snapshot unavailable")
	}
	if err != nil || !ok {
		out := make([]ports.HeatPoint, len(fallbackHeatmap))
		copy(out, fallbackHeatmap)
		return out
	}
	return points
}
