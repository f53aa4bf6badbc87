package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/courier"
)

// UpdateCourierStatusCommandHandler writes presence columns only. The cash
// balance and active order are owned by settlement and matching.
type UpdateCourierStatusCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewUpdateCourierStatusCommandHandler(uowFactory CourierUoWFactory) UpdateCourierStatusCommandHandler {
	return UpdateCourierStatusCommandHandler{uowFactory: uowFactory}
}

func (h UpdateCourierStatusCommandHandler) Handle(
	ctx context.Context,
	command UpdateCourierStatusCommand,
) (*courier.Courier, error) {
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

	courierRepo := uow.CourierRepository()

	c, err := courierRepo.Get(ctx, command.CourierID())
	if err != nil {
		return nil, err
	}

	if err = c.UpdatePresence(command.Online(), command.Location()); err != nil {
		return nil, err
	}

	if err = courierRepo.UpdatePresence(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
