package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkOrderReadyCommandIsNotConstructed = errors.New(
	"MarkOrderReadyCommand must be created via NewMarkOrderReadyCommand constructor",
)

type MarkOrderReadyCommand struct {
	orderID  kernel.UUID
	vendorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkOrderReadyCommand(orderID, vendorID kernel.UUID) (MarkOrderReadyCommand, error) {
	if err := errors.Join(orderID.Validate(), vendorID.Validate()); err != nil {
		return MarkOrderReadyCommand{}, err
	}
	return MarkOrderReadyCommand{
		orderID:  orderID,
		vendorID: vendorID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c MarkOrderReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderReadyCommandIsNotConstructed)
}

func (c MarkOrderReadyCommand) OrderID() kernel.UUID  { return c.orderID }
func (c MarkOrderReadyCommand) VendorID() kernel.UUID { return c.vendorID }
