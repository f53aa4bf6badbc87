package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the VAT applied to the food subtotal.
var DefaultTaxRate = decimal.RequireFromString("0.075")

// taxPlaces is the precision tax is rounded to, once, at allocation.
const taxPlaces = 2

// PaymentAllocator splits an order's charges into what is paid online and
// what the courier collects in cash. Both checkout paths must use it.
type PaymentAllocator struct {
	taxRate decimal.Decimal
}

func NewPaymentAllocator(taxRate decimal.Decimal) (PaymentAllocator, error) {
	if taxRate.IsNegative() || taxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return PaymentAllocator{}, errs.NewValueIsOutOfRangeError("tax rate", taxRate, 0, 1)
	}
	return PaymentAllocator{taxRate: taxRate}, nil
}

func NewDefaultPaymentAllocator() PaymentAllocator {
	return PaymentAllocator{taxRate: DefaultTaxRate}
}

func (a PaymentAllocator) TaxRate() decimal.Decimal {
	return a.taxRate
}

// Allocate computes tax as subtotal * rate and splits the total:
//   - PICKUP: no fee, everything upfront
//   - DELIVERY + FULL_PREPAID: everything upfront
//   - DELIVERY + PARTIAL_COURIER: fee due on delivery
func (a PaymentAllocator) Allocate(
	subtotal, deliveryFee decimal.Decimal,
	fulfillment order.FulfillmentMode,
	payment order.PaymentMode,
) (order.Charges, error) {
	if err := fulfillment.Validate(); err != nil {
		return order.Charges{}, err
	}
	if err := payment.Validate(); err != nil {
		return order.Charges{}, err
	}
	if subtotal.IsNegative() {
		return order.Charges{}, errs.NewValueIsInvalidErrorWithCause("subtotal", fmt.Errorf("%s is negative", subtotal))
	}
	if deliveryFee.IsNegative() {
		return order.Charges{}, errs.NewValueIsInvalidErrorWithCause("delivery fee", fmt.Errorf("%s is negative", deliveryFee))
	}

	tax := subtotal.Mul(a.taxRate).Round(taxPlaces)
	food := subtotal.Add(tax)

	var (
		fee     = deliveryFee
		upfront decimal.Decimal
		due     = decimal.Zero
	)
	switch {
	case fulfillment == order.Pickup:
		fee = decimal.Zero
		upfront = food
	case payment == order.FullPrepaid:
		upfront = food.Add(fee)
	default:
		upfront = food
		due = fee
	}

	return order.NewCharges(subtotal, tax, fee, upfront, due)
}
