package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

type OrderRepository interface {
	// Add persists a new order with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes status, courier and timestamps only if the stored row still
	// carries aggregate.Version(). A stale version fails with an InvalidState
	// error wrapping errs.ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ErrObjectNotFound for an unknown id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListUnmatchedReady returns up to limit READY delivery orders without a
	// courier, oldest first.
	ListUnmatchedReady(ctx context.Context, limit int) ([]*order.Order, error)
}
