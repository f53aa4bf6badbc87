package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// SweepResult counts the outcome of one sweep.
type SweepResult struct {
	Matched int
	Pending int
	Failed  int
}

// SweepUnmatchedOrdersCommandHandler re-runs matching for READY delivery
// orders that are still without a courier. Each order is matched in its own
// transaction; a failure on one does not stop the rest.
type SweepUnmatchedOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	matching   CourierMatching
	logger     logrus.FieldLogger
}

func NewSweepUnmatchedOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	matching CourierMatching,
	logger logrus.FieldLogger,
) SweepUnmatchedOrdersCommandHandler {
	return SweepUnmatchedOrdersCommandHandler{
		uowFactory: uowFactory,
		matching:   matching,
		logger:     logger.WithField("component", "sweep_unmatched_orders"),
	}
}

func (h SweepUnmatchedOrdersCommandHandler) Handle(
	ctx context.Context,
	command SweepUnmatchedOrdersCommand,
) (SweepResult, error) {
	if err := command.Validate(); err != nil {
		return SweepResult{}, err
	}

	ids, err := h.unmatched(ctx, command.Limit())
	if err != nil {
		return SweepResult{}, err
	}

	var result SweepResult
	for _, id := range ids {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		match, err := NewMatchCourierCommand(id, nil)
		if err != nil {
			return result, err
		}

		_, err = h.matching.Handle(ctx, match)
		switch {
		case err == nil:
			result.Matched++
		case errors.Is(err, services.ErrNoCourierAvailable):
			result.Pending++
		case errors.Is(err, errs.ErrInvalidState):
			// Moved on since it was listed: cancelled or matched by someone else.
		default:
			result.Failed++
			h.logger.WithError(err).WithField("order_id", id.String()).Error("courier matching failed")
		}
	}

	return result, nil
}

func (h SweepUnmatchedOrdersCommandHandler) unmatched(ctx context.Context, limit int) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().ListUnmatchedReady(ctx, limit)
	if err != nil {
		return nil, err
	}

	return lo.Map(orders, func(o *order.Order, _ int) kernel.UUID { return o.ID() }), nil
}
