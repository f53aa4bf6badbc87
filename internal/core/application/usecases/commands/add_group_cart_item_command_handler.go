package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/groupcart"
	"fulfillment/internal/pkg/errs"
)

// AddGroupCartItemCommandHandler appends a contribution under the cart's
// row lock, so it either lands before a concurrent checkout or fails with
// groupcart.ErrCartClosed.
type AddGroupCartItemCommandHandler struct {
	uowFactory GroupCartUoWFactory
	now        func() time.Time
}

func NewAddGroupCartItemCommandHandler(uowFactory GroupCartUoWFactory, now func() time.Time) AddGroupCartItemCommandHandler {
	if now == nil {
		now = time.Now
	}
	return AddGroupCartItemCommandHandler{uowFactory: uowFactory, now: now}
}

func (h AddGroupCartItemCommandHandler) Handle(
	ctx context.Context,
	command AddGroupCartItemCommand,
) (groupcart.Contribution, error) {
	if err := command.Validate(); err != nil {
		return groupcart.Contribution{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return groupcart.Contribution{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.GroupCartRepository()
	catalogRepo := uow.CatalogRepository()

	cart, err := cartRepo.GetByCode(ctx, command.Code())
	if err != nil {
		return groupcart.Contribution{}, err
	}
	if !cart.IsActive() {
		return groupcart.Contribution{}, groupcart.ErrCartClosed
	}

	item, err := catalogRepo.GetMenuItem(ctx, command.MenuItemID())
	if err != nil {
		return groupcart.Contribution{}, err
	}
	if !item.IsAvailable {
		return groupcart.Contribution{}, errs.NewObjectNotFoundError("menu item", item.ID)
	}

	contribution, err := cart.AddItem(
		item.ID, item.VendorID,
		command.Quantity(),
		command.Label(),
		command.ContributorID(),
		h.now().UTC(),
	)
	if err != nil {
		return groupcart.Contribution{}, err
	}

	if err = cartRepo.AddContribution(ctx, cart.ID(), contribution); err != nil {
		return groupcart.Contribution{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return groupcart.Contribution{}, err
	}

	return contribution, nil
}
