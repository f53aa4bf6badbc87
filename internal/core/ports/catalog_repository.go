package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
)

// CatalogRepository reads the live menu. It never writes.
type CatalogRepository interface {
	GetVendor(ctx context.Context, id kernel.UUID) (catalog.Vendor, error)

	GetMenuItem(ctx context.Context, id kernel.UUID) (catalog.MenuItem, error)

	// GetMenuItems returns the items found; missing ids are the caller's check.
	GetMenuItems(ctx context.Context, ids []kernel.UUID) ([]catalog.MenuItem, error)
}
