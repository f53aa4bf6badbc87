package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ChargesAllocator splits the charges of an order between upfront and cash.
type ChargesAllocator interface {
	Allocate(
		subtotal, deliveryFee decimal.Decimal,
		fulfillment order.FulfillmentMode,
		payment order.PaymentMode,
	) (order.Charges, error)
}

// lineRequest is one line to price from the live catalog.
type lineRequest struct {
	menuItemID  kernel.UUID
	quantity    int
	contributor string
}

// pricing is shared by single and group checkout so both charge the same
// fee and tax for the same basket.
type pricing struct {
	allocator   ChargesAllocator
	deliveryFee decimal.Decimal
}

// openVendor loads the vendor and refuses a closed one.
func openVendor(ctx context.Context, catalogRepo ports.CatalogRepository, vendorID kernel.UUID) (catalog.Vendor, error) {
	vendor, err := catalogRepo.GetVendor(ctx, vendorID)
	if err != nil {
		return catalog.Vendor{}, err
	}
	if !vendor.IsOpen {
		return catalog.Vendor{}, errs.NewInvalidStateError("vendor "+vendorID.String(), "CLOSED", "place an order with")
	}
	return vendor, nil
}

// price captures the current unit price of every line. Unknown and
// unavailable items are not found; items of another vendor fail with
// foreign(item).
func (p pricing) price(
	ctx context.Context,
	catalogRepo ports.CatalogRepository,
	vendor catalog.Vendor,
	lines []lineRequest,
	fulfillment order.FulfillmentMode,
	payment order.PaymentMode,
	foreign func(item catalog.MenuItem) error,
) ([]order.LineItem, order.Charges, error) {
	items, err := catalogRepo.GetMenuItems(ctx, lo.Map(lines, func(l lineRequest, _ int) kernel.UUID {
		return l.menuItemID
	}))
	if err != nil {
		return nil, order.Charges{}, err
	}
	byID := lo.KeyBy(items, func(item catalog.MenuItem) kernel.UUID { return item.ID })

	priced := make([]order.LineItem, 0, len(lines))
	subtotal := decimal.Zero
	for _, l := range lines {
		item, ok := byID[l.menuItemID]
		if !ok || !item.IsAvailable {
			return nil, order.Charges{}, errs.NewObjectNotFoundError("menu item", l.menuItemID)
		}
		if !item.BelongsTo(vendor.ID) {
			return nil, order.Charges{}, foreign(item)
		}

		line, err := order.NewLineItem(item.ID, l.quantity, item.Price, l.contributor)
		if err != nil {
			return nil, order.Charges{}, err
		}
		priced = append(priced, line)
		subtotal = subtotal.Add(line.Total())
	}

	charges, err := p.allocator.Allocate(subtotal, p.deliveryFee, fulfillment, payment)
	if err != nil {
		return nil, order.Charges{}, err
	}
	return priced, charges, nil
}

func notSoldBy(vendorID kernel.UUID) func(item catalog.MenuItem) error {
	return func(item catalog.MenuItem) error {
		return errs.NewValueIsInvalidErrorWithCause("menu item",
			fmt.Errorf("%s is not sold by vendor %s", item.ID, vendorID))
	}
}

// destination drops the address of a pickup order: nobody travels to it.
func destination(
	fulfillment order.FulfillmentMode,
	address string,
	location *kernel.Location,
) (string, *kernel.Location) {
	if fulfillment == order.Pickup {
		return "", nil
	}
	return address, location
}
