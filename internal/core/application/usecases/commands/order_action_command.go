package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrOrderActionCommandIsNotConstructed = errors.New(
	"OrderActionCommand must be created via NewOrderActionCommand constructor",
)

// OrderAction names a plain order transition: one actor, one aggregate, no
// side effects beyond the recorded event.
type OrderAction string

const (
	// Vendor actions.
	AcceptOrder   OrderAction = "accept"
	RejectOrder   OrderAction = "reject"
	HandOverOrder OrderAction = "hand-over"

	// Courier actions.
	AcceptAssignment OrderAction = "accept-assignment"
	PickUpOrder      OrderAction = "pickup"
	StartDelivery    OrderAction = "on-way"
)

func (a OrderAction) Validate() error {
	switch a {
	case AcceptOrder, RejectOrder, HandOverOrder, AcceptAssignment, PickUpOrder, StartDelivery:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not an order action", string(a)))
}

// OrderActionCommand asks the order ledger to apply action to orderID on
// behalf of actorID, a vendor or courier id depending on the action.
type OrderActionCommand struct {
	action  OrderAction
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewOrderActionCommand(action OrderAction, orderID, actorID kernel.UUID) (OrderActionCommand, error) {
	if err := errors.Join(action.Validate(), orderID.Validate(), actorID.Validate()); err != nil {
		return OrderActionCommand{}, err
	}
	return OrderActionCommand{
		action:  action,
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c OrderActionCommand) Validate() error {
	return c.guard.Validate(ErrOrderActionCommandIsNotConstructed)
}

func (c OrderActionCommand) Action() OrderAction  { return c.action }
func (c OrderActionCommand) OrderID() kernel.UUID { return c.orderID }
func (c OrderActionCommand) ActorID() kernel.UUID { return c.actorID }
