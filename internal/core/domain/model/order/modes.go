package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// FulfillmentMode decides whether a courier and a delivery fee apply.
type FulfillmentMode string

const (
	Delivery FulfillmentMode = "DELIVERY"
	Pickup   FulfillmentMode = "PICKUP"
)

func ParseFulfillmentMode(s string) (FulfillmentMode, error) {
	m := FulfillmentMode(strings.ToUpper(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m FulfillmentMode) Validate() error {
	if m != Delivery && m != Pickup {
		return errs.NewValueIsInvalidErrorWithCause("fulfillment mode", fmt.Errorf("%q is not DELIVERY or PICKUP", string(m)))
	}
	return nil
}

// PaymentMode decides which part of the total is collected online.
type PaymentMode string

const (
	// FullPrepaid collects everything upfront.
	FullPrepaid PaymentMode = "FULL_PREPAID"
	// PartialCourier collects the delivery fee in cash on delivery.
	PartialCourier PaymentMode = "PARTIAL_COURIER"
)

func ParsePaymentMode(s string) (PaymentMode, error) {
	m := PaymentMode(strings.ToUpper(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m PaymentMode) Validate() error {
	if m != FullPrepaid && m != PartialCourier {
		return errs.NewValueIsInvalidErrorWithCause("payment mode", fmt.Errorf("%q is not FULL_PREPAID or PARTIAL_COURIER", string(m)))
	}
	return nil
}
