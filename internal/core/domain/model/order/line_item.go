package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem")

// LineItem is one menu item of an order at the unit price captured when the
// order was created. Contributor is the group cart participant who added it.
type LineItem struct {
	menuItemID    kernel.UUID
	quantity      int
	unitPrice     decimal.Decimal
	contributor   string
	isConstructed bool
}

func NewLineItem(menuItemID kernel.UUID, quantity int, unitPrice decimal.Decimal, contributor string) (LineItem, error) {
	item := LineItem{contributor: contributor}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	item.isConstructed = true
	return item, nil
}

func (i LineItem) Validate() error {
	if !i.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

func (i LineItem) MenuItemID() kernel.UUID    { return i.menuItemID }
func (i LineItem) Quantity() int              { return i.quantity }
func (i LineItem) UnitPrice() decimal.Decimal { return i.unitPrice }
func (i LineItem) Contributor() string        { return i.contributor }

// Total is unit price times quantity.
func (i LineItem) Total() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *LineItem) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.menuItemID = id
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid", fmt.Errorf("%s is negative", price))
	}
	i.unitPrice = price
	return nil
}
