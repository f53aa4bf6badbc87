// Package catalog holds the read-only view of vendors and menu items the
// fulfillment engine prices orders from. Menu editing lives elsewhere.
package catalog

import (
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type Vendor struct {
	ID       kernel.UUID
	Name     string
	IsOpen   bool
	Location kernel.Location
}

// MenuItem carries the live price. Orders copy it at creation and never read it again.
type MenuItem struct {
	ID          kernel.UUID
	VendorID    kernel.UUID
	Name        string
	Price       decimal.Decimal
	IsAvailable bool
}

// BelongsTo reports whether the item is sold by vendorID.
func (m MenuItem) BelongsTo(vendorID kernel.UUID) bool {
	return m.VendorID.IsEqual(vendorID)
}
