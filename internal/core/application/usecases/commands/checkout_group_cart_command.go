package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCheckoutGroupCartCommandIsNotConstructed = errors.New(
	"CheckoutGroupCartCommand must be created via NewCheckoutGroupCartCommand constructor",
)

// CheckoutGroupCartCommand converts a cart into one delivery order owned by
// the host.
type CheckoutGroupCartCommand struct {
	orderID          kernel.UUID
	cartID           kernel.UUID
	hostID           kernel.UUID
	payment          order.PaymentMode
	deliveryAddress  string
	deliveryLocation *kernel.Location

	guard guard.ConstructorGuard
}

func NewCheckoutGroupCartCommand(
	orderID, cartID, hostID kernel.UUID,
	payment order.PaymentMode,
	deliveryAddress string,
	deliveryLocation *kernel.Location,
) (CheckoutGroupCartCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		cartID.Validate(),
		hostID.Validate(),
		payment.Validate(),
	); err != nil {
		return CheckoutGroupCartCommand{}, err
	}

	return CheckoutGroupCartCommand{
		orderID:          orderID,
		cartID:           cartID,
		hostID:           hostID,
		payment:          payment,
		deliveryAddress:  deliveryAddress,
		deliveryLocation: deliveryLocation,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CheckoutGroupCartCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutGroupCartCommandIsNotConstructed)
}

func (c CheckoutGroupCartCommand) OrderID() kernel.UUID               { return c.orderID }
func (c CheckoutGroupCartCommand) CartID() kernel.UUID                { return c.cartID }
func (c CheckoutGroupCartCommand) HostID() kernel.UUID                { return c.hostID }
func (c CheckoutGroupCartCommand) Payment() order.PaymentMode         { return c.payment }
func (c CheckoutGroupCartCommand) DeliveryAddress() string            { return c.deliveryAddress }
func (c CheckoutGroupCartCommand) DeliveryLocation() *kernel.Location { return c.deliveryLocation }
