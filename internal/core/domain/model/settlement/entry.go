// Package settlement records how one delivery changed a courier's cash balance.
package settlement

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry")

// Entry is the immutable ledger line written when an order is delivered.
// There is at most one entry per order.
type Entry struct {
	id            kernel.UUID
	orderID       kernel.UUID
	courierID     kernel.UUID
	collected     decimal.Decimal
	fee           decimal.Decimal
	balanceChange decimal.Decimal
	settledAt     time.Time
	isConstructed bool
}

func NewEntry(
	id, orderID, courierID kernel.UUID,
	collected, fee, balanceChange decimal.Decimal,
	settledAt time.Time,
) (Entry, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), courierID.Validate()); err != nil {
		return Entry{}, err
	}
	return Entry{
		id:            id,
		orderID:       orderID,
		courierID:     courierID,
		collected:     collected,
		fee:           fee,
		balanceChange: balanceChange,
		settledAt:     settledAt,
		isConstructed: true,
	}, nil
}

func (e Entry) Validate() error {
	if !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e Entry) ID() kernel.UUID                { return e.id }
func (e Entry) OrderID() kernel.UUID           { return e.orderID }
func (e Entry) CourierID() kernel.UUID         { return e.courierID }
func (e Entry) Collected() decimal.Decimal     { return e.collected }
func (e Entry) Fee() decimal.Decimal           { return e.fee }
func (e Entry) BalanceChange() decimal.Decimal { return e.balanceChange }
func (e Entry) SettledAt() time.Time           { return e.settledAt }
