package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/groupcart"
	"fulfillment/internal/core/domain/model/kernel"
)

type GroupCartRepository interface {
	Add(ctx context.Context, cart *groupcart.Cart) error

	CodeExists(ctx context.Context, code groupcart.Code) (bool, error)

	// Get and GetByCode lock the cart row until the transaction ends, so
	// contributions and checkout on one cart are serialized.
	Get(ctx context.Context, id kernel.UUID) (*groupcart.Cart, error)
	GetByCode(ctx context.Context, code groupcart.Code) (*groupcart.Cart, error)

	AddContribution(ctx context.Context, cartID kernel.UUID, item groupcart.Contribution) error

	// Deactivate flips is_active only if it is still true; otherwise it
	// returns groupcart.ErrCartClosed.
	Deactivate(ctx context.Context, cartID kernel.UUID) error
}
