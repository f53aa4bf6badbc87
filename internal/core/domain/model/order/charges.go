package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrChargesAreNotConstructed = errors.New("Charges must be created via NewCharges")

// Charges is the monetary breakdown of an order, fixed at creation.
// Total always equals Subtotal + Tax + DeliveryFee and PaidUpfront + DueOnDelivery.
type Charges struct {
	subtotal      decimal.Decimal
	tax           decimal.Decimal
	deliveryFee   decimal.Decimal
	total         decimal.Decimal
	paidUpfront   decimal.Decimal
	dueOnDelivery decimal.Decimal
	isConstructed bool
}

func NewCharges(subtotal, tax, deliveryFee, paidUpfront, dueOnDelivery decimal.Decimal) (Charges, error) {
	c := Charges{
		subtotal:      subtotal,
		tax:           tax,
		deliveryFee:   deliveryFee,
		total:         subtotal.Add(tax).Add(deliveryFee),
		paidUpfront:   paidUpfront,
		dueOnDelivery: dueOnDelivery,
	}

	if err := errors.Join(
		nonNegative("subtotal", subtotal),
		nonNegative("tax", tax),
		nonNegative("delivery fee", deliveryFee),
		nonNegative("paid upfront", paidUpfront),
		nonNegative("due on delivery", dueOnDelivery),
	); err != nil {
		return Charges{}, err
	}

	if !paidUpfront.Add(dueOnDelivery).Equal(c.total) {
		return Charges{}, errs.NewValueIsInvalidErrorWithCause("charges", fmt.Errorf(
			"paid upfront %s + due on delivery %s != total %s", paidUpfront, dueOnDelivery, c.total))
	}

	c.isConstructed = true
	return c, nil
}

func (c Charges) Validate() error {
	if !c.isConstructed {
		return ErrChargesAreNotConstructed
	}
	return nil
}

// ValidateFor checks the split against the order's modes: cash is only due on
// delivery orders paid partially by courier, and pickup orders carry no fee.
func (c Charges) ValidateFor(fulfillment FulfillmentMode, payment PaymentMode) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.dueOnDelivery.IsPositive() && (fulfillment != Delivery || payment != PartialCourier) {
		return errs.NewValueIsInvalidErrorWithCause("charges", fmt.Errorf(
			"%s due on delivery is not allowed for %s/%s", c.dueOnDelivery, fulfillment, payment))
	}
	if fulfillment == Pickup && !c.deliveryFee.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("charges", errors.New("pickup orders have no delivery fee"))
	}
	return nil
}

func (c Charges) Subtotal() decimal.Decimal      { return c.subtotal }
func (c Charges) Tax() decimal.Decimal           { return c.tax }
func (c Charges) DeliveryFee() decimal.Decimal   { return c.deliveryFee }
func (c Charges) Total() decimal.Decimal         { return c.total }
func (c Charges) PaidUpfront() decimal.Decimal   { return c.paidUpfront }
func (c Charges) DueOnDelivery() decimal.Decimal { return c.dueOnDelivery }

func nonNegative(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", v))
	}
	return nil
}
