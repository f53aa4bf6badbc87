package queries

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

var ErrAggregateDemandQueryIsNotConstructed = errors.New(
	"AggregateDemandQuery must be created via NewAggregateDemandQuery constructor",
)

// AggregateDemandQuery buckets delivery destinations of orders created since a
// point in time into cells of 0.01 degrees.
type AggregateDemandQuery struct {
	since time.Time
	limit int

	guard guard.ConstructorGuard
}

func NewAggregateDemandQuery(since time.Time, limit int) (AggregateDemandQuery, error) {
	if since.IsZero() {
		return AggregateDemandQuery{}, errs.NewValueIsRequiredError("since")
	}
	if limit <= 0 {
		return AggregateDemandQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "+Inf")
	}
	return AggregateDemandQuery{since: since, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q AggregateDemandQuery) Validate() error {
	return q.guard.Validate(ErrAggregateDemandQueryIsNotConstructed)
}

func (q AggregateDemandQuery) Since() time.Time { return q.since }
func (q AggregateDemandQuery) Limit() int       { return q.limit }

type demandCell struct {
	Lat float64
	Lng float64
	N   int64
}

type AggregateDemandQueryHandler struct {
	db *gorm.DB
}

func NewAggregateDemandQueryHandler(db *gorm.DB) AggregateDemandQueryHandler {
	return AggregateDemandQueryHandler{db: db}
}

// Handle returns the busiest cells first. Intensity is the cell count divided
// by the count of the busiest cell; cancelled orders are not demand.
func (h AggregateDemandQueryHandler) Handle(ctx context.Context, query AggregateDemandQuery) ([]ports.HeatPoint, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var cells []demandCell
	if err := h.db.WithContext(ctx).Raw(`
		SELECT ROUND(delivery_lat::numeric, 2)::float8 AS lat,
		       ROUND(delivery_lng::numeric, 2)::float8 AS lng,
		       COUNT(*) AS n
		FROM orders
		WHERE fulfillment_mode = ?
		  AND delivery_lat IS NOT NULL
		  AND status <> ?
		  AND created_at >= ?
		GROUP BY 1, 2
		ORDER BY n DESC, lat, lng
		LIMIT ?
	`, string(order.Delivery), order.Cancelled.String(), query.Since(), query.Limit()).Scan(&cells).Error; err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return []ports.HeatPoint{}, nil
	}

	busiest := float64(cells[0].N)
	return lo.Map(cells, func(c demandCell, _ int) ports.HeatPoint {
		return ports.HeatPoint{Lat: c.Lat, Lng: c.Lng, Intensity: float64(c.N) / busiest}
	}), nil
}
