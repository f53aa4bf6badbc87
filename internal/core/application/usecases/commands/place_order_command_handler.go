package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PlaceOrderCommandHandler prices a single-vendor basket from the live
// catalog and stores the order in PLACED.
type PlaceOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	pricing    pricing
	now        func() time.Time
}

func NewPlaceOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	allocator ChargesAllocator,
	deliveryFee decimal.Decimal,
	now func() time.Time,
) PlaceOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing{allocator: allocator, deliveryFee: deliveryFee},
		now:        now,
	}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, command PlaceOrderCommand) (*order.Order, error) {
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

	catalogRepo := uow.CatalogRepository()
	orderRepo := uow.OrderRepository()

	vendor, err := openVendor(ctx, catalogRepo, command.VendorID())
	if err != nil {
		return nil, err
	}

	lines := lo.Map(command.Items(), func(item OrderItem, _ int) lineRequest {
		return lineRequest{menuItemID: item.MenuItemID, quantity: item.Quantity}
	})

	items, charges, err := h.pricing.price(
		ctx, catalogRepo, vendor, lines,
		command.Fulfillment(), command.Payment(),
		notSoldBy(vendor.ID),
	)
	if err != nil {
		return nil, err
	}

	address, location := destination(command.Fulfillment(), command.DeliveryAddress(), command.DeliveryLocation())

	o, err := order.NewOrder(order.Draft{
		ID:               command.OrderID(),
		CustomerID:       command.CustomerID(),
		VendorID:         vendor.ID,
		Items:            items,
		Charges:          charges,
		Fulfillment:      command.Fulfillment(),
		Payment:          command.Payment(),
		DeliveryAddress:  address,
		DeliveryLocation: location,
		PickupLocation:   vendor.Location,
		CreatedAt:        h.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
