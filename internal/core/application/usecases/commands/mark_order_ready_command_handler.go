package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/sirupsen/logrus"
)

// CourierMatching is the part of MatchCourierCommandHandler that
// MarkOrderReady and the sweep depend on.
type CourierMatching interface {
	Handle(ctx context.Context, command MatchCourierCommand) (kernel.UUID, error)
}

// MarkOrderReadyResult is the committed ready order and, when matching found
// someone right away, the assigned courier.
type MarkOrderReadyResult struct {
	Order     *order.Order
	CourierID *kernel.UUID
}

// MarkOrderReadyCommandHandler commits PREPARING -> READY and then tries to
// match a courier in a separate transaction. The ready transition never
// depends on matching: a failed match is logged and the order waits for the
// sweep or a manual re-dispatch.
type MarkOrderReadyCommandHandler struct {
	uowFactory OrderUoWFactory
	matching   CourierMatching
	logger     logrus.FieldLogger
}

func NewMarkOrderReadyCommandHandler(
	uowFactory OrderUoWFactory,
	matching CourierMatching,
	logger logrus.FieldLogger,
) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{
		uowFactory: uowFactory,
		matching:   matching,
		logger:     logger.WithField("component", "mark_order_ready"),
	}
}

func (h MarkOrderReadyCommandHandler) Handle(ctx context.Context, command MarkOrderReadyCommand) (MarkOrderReadyResult, error) {
	if err := command.Validate(); err != nil {
		return MarkOrderReadyResult{}, err
	}

	o, err := h.markReady(ctx, command)
	if err != nil {
		return MarkOrderReadyResult{}, err
	}

	result := MarkOrderReadyResult{Order: o}
	if !o.NeedsCourier() {
		return result, nil
	}

	log := h.logger.WithField("order_id", o.ID().String())

	match, err := NewMatchCourierCommand(o.ID(), nil)
	if err != nil {
		log.WithError(err).Error("courier matching not started")
		return result, nil
	}

	courierID, err := h.matching.Handle(ctx, match)
	switch {
	case errors.Is(err, services.ErrNoCourierAvailable):
		log.Warn("no courier available, order waits for the sweep")
	case err != nil:
		log.WithError(err).Error("courier matching failed")
	default:
		log.WithField("courier_id", courierID.String()).Info("courier matched")
		result.CourierID = &courierID
	}

	return result, nil
}

func (h MarkOrderReadyCommandHandler) markReady(ctx context.Context, command MarkOrderReadyCommand) (*order.Order, error) {
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

	if err = o.MarkReady(command.VendorID()); err != nil {
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
