package services

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/pkg/errs"
)

var ErrOrderHasNoCourier = errors.New("order has no courier to settle with")

// SettlementLedger computes the balance change of a completed delivery.
//
// With cash collected on delivery the courier keeps their fee and owes the
// rest: change = collected - fee. Fully prepaid, the platform owes the fee:
// change = -fee. Applying the change is not idempotent, so it must be
// persisted in the transaction that moves the order to Delivered.
type SettlementLedger struct {
	now func() time.Time
}

func NewSettlementLedger(now func() time.Time) SettlementLedger {
	if now == nil {
		now = time.Now
	}
	return SettlementLedger{now: now}
}

// Settle requires a delivered order with a courier.
func (l SettlementLedger) Settle(o *order.Order) (settlement.Entry, error) {
	if err := o.Validate(); err != nil {
		return settlement.Entry{}, err
	}
	if o.Status() != order.Delivered {
		return settlement.Entry{}, errs.NewInvalidStateError("order", o.Status().String(), "settle")
	}
	if o.Courier() == nil {
		return settlement.Entry{}, ErrOrderHasNoCourier
	}

	fee := o.Charges().DeliveryFee()
	collected := o.Charges().DueOnDelivery()

	change := fee.Neg()
	if collected.IsPositive() {
		change = collected.Sub(fee)
	}

	return settlement.NewEntry(kernel.NewUUID(), o.ID(), *o.Courier(), collected, fee, change, l.now().UTC())
}
