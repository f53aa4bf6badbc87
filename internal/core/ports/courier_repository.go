package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type CourierRepository interface {
	Add(ctx context.Context, aggregate *courier.Courier) error

	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable returns couriers that are online, have a known position
	// and no active order.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)

	// UpdatePresence writes only the online flag and last position.
	UpdatePresence(ctx context.Context, aggregate *courier.Courier) error

	// Claim reserves the courier for orderID if they are online and idle.
	// It reports false when a concurrent pass got there first.
	Claim(ctx context.Context, courierID, orderID kernel.UUID) (bool, error)

	// ApplySettlement increments the cash balance by delta and releases the
	// courier's active order in one statement.
	ApplySettlement(ctx context.Context, courierID kernel.UUID, delta decimal.Decimal) error
}
