package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMatchCourierCommandIsNotConstructed = errors.New(
	"MatchCourierCommand must be created via NewMatchCourierCommand constructor",
)

// MatchCourierCommand requests a courier for a ready delivery order.
//
// RequestedBy is the vendor asking for a manual re-dispatch. It is nil when
// the system itself triggers matching (after MarkReady, or from the sweep).
//
// Example:
//
//	cmd, err := NewMatchCourierCommand(orderID, &vendorID)
//	if err != nil {
//	    return err
//	}
//	courierID, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrNoCourierAvailable) {
//	    // the order stays READY; the sweep retries later
//	}
type MatchCourierCommand struct {
	orderID     kernel.UUID
	requestedBy *kernel.UUID

	guard guard.ConstructorGuard
}

func NewMatchCourierCommand(orderID kernel.UUID, requestedBy *kernel.UUID) (MatchCourierCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MatchCourierCommand{}, err
	}
	if requestedBy != nil {
		if err := requestedBy.Validate(); err != nil {
			return MatchCourierCommand{}, err
		}
	}
	return MatchCourierCommand{
		orderID:     orderID,
		requestedBy: requestedBy,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c MatchCourierCommand) Validate() error {
	return c.guard.Validate(ErrMatchCourierCommandIsNotConstructed)
}

func (c MatchCourierCommand) OrderID() kernel.UUID      { return c.orderID }
func (c MatchCourierCommand) RequestedBy() *kernel.UUID { return c.requestedBy }
