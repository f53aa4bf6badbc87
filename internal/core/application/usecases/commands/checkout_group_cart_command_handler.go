package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/groupcart"
	"fulfillment/internal/core/domain/model/order"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CheckoutGroupCartCommandHandler creates the order and closes the cart in
// one transaction: either both happen or neither does.
//
// The cart row is read with a lock, and the close is conditional on the cart
// still being active, so of several concurrent checkouts exactly one creates
// an order and the rest fail with groupcart.ErrCartClosed.
type CheckoutGroupCartCommandHandler struct {
	uowFactory GroupCheckoutUoWFactory
	pricing    pricing
	now        func() time.Time
}

func NewCheckoutGroupCartCommandHandler(
	uowFactory GroupCheckoutUoWFactory,
	allocator ChargesAllocator,
	deliveryFee decimal.Decimal,
	now func() time.Time,
) CheckoutGroupCartCommandHandler {
	if now == nil {
		now = time.Now
	}
	return CheckoutGroupCartCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing{allocator: allocator, deliveryFee: deliveryFee},
		now:        now,
	}
}

func (h CheckoutGroupCartCommandHandler) Handle(ctx context.Context, command CheckoutGroupCartCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.GroupCartRepository()
	catalogRepo := uow.CatalogRepository()
	orderRepo := uow.OrderRepository()

	cart, err := cartRepo.Get(ctx, command.CartID())
	if err != nil {
		return nil, err
	}

	if err = cart.Checkout(command.HostID()); err != nil {
		return nil, err
	}

	vendor, err := openVendor(ctx, catalogRepo, *cart.VendorID())
	if err != nil {
		return nil, err
	}

	lines := lo.Map(cart.Items(), func(item groupcart.Contribution, _ int) lineRequest {
		return lineRequest{menuItemID: item.MenuItemID, quantity: item.Quantity, contributor: item.Label}
	})

	items, charges, err := h.pricing.price(
		ctx, catalogRepo, vendor, lines,
		order.Delivery, command.Payment(),
		func(catalog.MenuItem) error { return groupcart.ErrMixedVendors },
	)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(order.Draft{
		ID:               command.OrderID(),
		CustomerID:       cart.HostID(),
		VendorID:         vendor.ID,
		Items:            items,
		Charges:          charges,
		Fulfillment:      order.Delivery,
		Payment:          command.Payment(),
		DeliveryAddress:  command.DeliveryAddress(),
		DeliveryLocation: command.DeliveryLocation(),
		PickupLocation:   vendor.Location,
		CreatedAt:        h.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = cartRepo.Deactivate(ctx, cart.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
