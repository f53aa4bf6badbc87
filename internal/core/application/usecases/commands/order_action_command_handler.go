package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderActionCommandHandler applies a plain transition as one check-and-set:
// the repository refuses the write if the order changed since it was read.
type OrderActionCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewOrderActionCommandHandler(uowFactory OrderUoWFactory) OrderActionCommandHandler {
	return OrderActionCommandHandler{uowFactory: uowFactory}
}

func (h OrderActionCommandHandler) Handle(ctx context.Context, command OrderActionCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = apply(o, command); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func apply(o *order.Order, command OrderActionCommand) error {
	actor := command.ActorID()
	switch command.Action() {
	case AcceptOrder:
		return o.Accept(actor)
	case RejectOrder:
		return o.Reject(actor)
	case HandOverOrder:
		return o.HandOver(actor)
	case AcceptAssignment:
		return o.AcceptAssignment(actor)
	case PickUpOrder:
		return o.PickUp(actor)
	case StartDelivery:
		return o.StartDelivery(actor)
	}
	return command.Action().Validate()
}
