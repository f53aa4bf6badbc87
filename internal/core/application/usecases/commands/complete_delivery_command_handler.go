package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"
)

// Settler computes the balance change of a delivered order.
type Settler interface {
	Settle(o *order.Order) (settlement.Entry, error)
}

// CompleteDeliveryCommandHandler moves ON_WAY to DELIVERED and settles the
// courier's cash balance in the same transaction. The order's version check
// admits exactly one completion and the settlement row is unique per order,
// so a balance is never changed twice for one delivery.
type CompleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	settler    Settler
}

func NewCompleteDeliveryCommandHandler(uowFactory DeliveryUoWFactory, settler Settler) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		settler:    settler,
	}
}

func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) (settlement.Entry, error) {
	if err := command.Validate(); err != nil {
		return settlement.Entry{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return settlement.Entry{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()
	settlementRepo := uow.SettlementRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return settlement.Entry{}, err
	}

	if err = o.Deliver(command.CourierID()); err != nil {
		return settlement.Entry{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return settlement.Entry{}, err
	}

	entry, err := h.settler.Settle(o)
	if err != nil {
		return settlement.Entry{}, err
	}

	if err = settlementRepo.Add(ctx, entry); err != nil {
		return settlement.Entry{}, err
	}

	if err = courierRepo.ApplySettlement(ctx, entry.CourierID(), entry.BalanceChange()); err != nil {
		return settlement.Entry{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return settlement.Entry{}, err
	}

	return entry, nil
}
