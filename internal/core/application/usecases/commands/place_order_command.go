package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// OrderItem is a requested menu item and quantity. The price comes from the
// catalog at checkout, never from the client.
type OrderItem struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// PlaceOrderCommand is a single-vendor checkout.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), customerID, vendorID,
//	    []OrderItem{{MenuItemID: jollof, Quantity: 2}},
//	    order.Delivery, order.PartialCourier, "12 Admiralty Way", &location)
type PlaceOrderCommand struct {
	orderID          kernel.UUID
	customerID       kernel.UUID
	vendorID         kernel.UUID
	items            []OrderItem
	fulfillment      order.FulfillmentMode
	payment          order.PaymentMode
	deliveryAddress  string
	deliveryLocation *kernel.Location

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	orderID, customerID, vendorID kernel.UUID,
	items []OrderItem,
	fulfillment order.FulfillmentMode,
	payment order.PaymentMode,
	deliveryAddress string,
	deliveryLocation *kernel.Location,
) (PlaceOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		vendorID.Validate(),
		validateOrderItems(items),
		fulfillment.Validate(),
		payment.Validate(),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return PlaceOrderCommand{
		orderID:          orderID,
		customerID:       customerID,
		vendorID:         vendorID,
		items:            append([]OrderItem(nil), items...),
		fulfillment:      fulfillment,
		payment:          payment,
		deliveryAddress:  deliveryAddress,
		deliveryLocation: deliveryLocation,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID               { return c.orderID }
func (c PlaceOrderCommand) CustomerID() kernel.UUID            { return c.customerID }
func (c PlaceOrderCommand) VendorID() kernel.UUID              { return c.vendorID }
func (c PlaceOrderCommand) Items() []OrderItem                 { return append([]OrderItem(nil), c.items...) }
func (c PlaceOrderCommand) Fulfillment() order.FulfillmentMode { return c.fulfillment }
func (c PlaceOrderCommand) Payment() order.PaymentMode         { return c.payment }
func (c PlaceOrderCommand) DeliveryAddress() string            { return c.deliveryAddress }
func (c PlaceOrderCommand) DeliveryLocation() *kernel.Location { return c.deliveryLocation }

func validateOrderItems(items []OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.MenuItemID.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
				fmt.Errorf("item %d: %d is not greater than 0", i, item.Quantity))
		}
	}
	return nil
}
