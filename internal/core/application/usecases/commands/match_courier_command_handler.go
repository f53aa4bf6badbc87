package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// CourierRanker orders candidate couriers for a pickup point.
type CourierRanker interface {
	Rank(pickup kernel.Location, couriers []*courier.Courier) ([]services.Candidate, error)
}

// MatchCourierCommandHandler reserves the nearest idle courier for an order.
//
// Candidates are claimed in rank order with a conditional update on the
// courier row; a claim lost to a concurrent pass moves on to the next
// candidate. The order is then written with its version check, so two passes
// over the same order cannot both assign it. Matching an order that already
// has a courier returns that courier.
type MatchCourierCommandHandler struct {
	uowFactory MatchUoWFactory
	ranker     CourierRanker
}

func NewMatchCourierCommandHandler(uowFactory MatchUoWFactory, ranker CourierRanker) MatchCourierCommandHandler {
	return MatchCourierCommandHandler{
		uowFactory: uowFactory,
		ranker:     ranker,
	}
}

// Handle returns the matched courier id, or services.ErrNoCourierAvailable.
func (h MatchCourierCommandHandler) Handle(ctx context.Context, command MatchCourierCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if vendor := command.RequestedBy(); vendor != nil && !o.VendorID().IsEqual(*vendor) {
		return kernel.UUID{}, errs.NewForbiddenError("vendor "+vendor.String(), "dispatch order "+o.ID().String())
	}
	if o.Courier() != nil && (o.Status() == order.Ready || o.Status() == order.Assigned) {
		return *o.Courier(), nil
	}
	if !o.NeedsCourier() {
		return kernel.UUID{}, errs.NewInvalidStateError("order", o.Status().String(), "match a courier to")
	}

	available, err := courierRepo.GetAllAvailable(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}

	candidates, err := h.ranker.Rank(o.PickupLocation(), available)
	if err != nil {
		return kernel.UUID{}, err
	}

	for _, candidate := range candidates {
		courierID := candidate.Courier.ID()

		claimed, err := courierRepo.Claim(ctx, courierID, o.ID())
		if err != nil {
			return kernel.UUID{}, err
		}
		if !claimed {
			continue
		}

		if err = o.AssignCourier(courierID); err != nil {
			return kernel.UUID{}, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return kernel.UUID{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return kernel.UUID{}, err
		}
		return courierID, nil
	}

	return kernel.UUID{}, services.ErrNoCourierAvailable
}
