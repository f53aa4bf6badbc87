package commands

import (
	"context"
	"errors"
	"io"
	"time"

	"fulfillment/internal/core/domain/model/groupcart"
)

// maxCodeAttempts bounds the search for a free share code.
const maxCodeAttempts = 5

var ErrNoFreeCartCode = errors.New("no free group cart code found")

// CreateGroupCartCommandHandler opens a cart under a fresh share code.
type CreateGroupCartCommandHandler struct {
	uowFactory GroupCartUoWFactory
	random     io.Reader
	now        func() time.Time
}

// NewCreateGroupCartCommandHandler reads codes from random, or from
// crypto/rand when random is nil.
func NewCreateGroupCartCommandHandler(
	uowFactory GroupCartUoWFactory,
	random io.Reader,
	now func() time.Time,
) CreateGroupCartCommandHandler {
	if now == nil {
		now = time.Now
	}
	return CreateGroupCartCommandHandler{
		uowFactory: uowFactory,
		random:     random,
		now:        now,
	}
}

func (h CreateGroupCartCommandHandler) Handle(ctx context.Context, command CreateGroupCartCommand) (*groupcart.Cart, error) {
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

	cartRepo := uow.GroupCartRepository()

	code, err := h.freeCode(ctx, cartRepo)
	if err != nil {
		return nil, err
	}

	cart, err := groupcart.NewCart(command.CartID(), code, command.HostID(), h.now().UTC())
	if err != nil {
		return nil, err
	}

	if err = cartRepo.Add(ctx, cart); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return cart, nil
}

func (h CreateGroupCartCommandHandler) freeCode(ctx context.Context, cartRepo codeChecker) (groupcart.Code, error) {
	for range maxCodeAttempts {
		code, err := groupcart.GenerateCode(h.random)
		if err != nil {
			return "", err
		}

		taken, err := cartRepo.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrNoFreeCartCode
}

type codeChecker interface {
	CodeExists(ctx context.Context, code groupcart.Code) (bool, error)
}
