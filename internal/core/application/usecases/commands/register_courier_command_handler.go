package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/courier"
)

// RegisterCourierCommandHandler onboards an offline courier with a zero balance.
type RegisterCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewRegisterCourierCommandHandler(uowFactory CourierUoWFactory) RegisterCourierCommandHandler {
	return RegisterCourierCommandHandler{uowFactory: uowFactory}
}

func (h RegisterCourierCommandHandler) Handle(ctx context.Context, command RegisterCourierCommand) (*courier.Courier, error) {
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

	c, err := courier.NewCourier(command.CourierID(), command.Name())
	if err != nil {
		return nil, err
	}

	if err = courierRepo.Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
