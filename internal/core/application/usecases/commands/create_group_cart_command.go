package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateGroupCartCommandIsNotConstructed = errors.New(
	"CreateGroupCartCommand must be created via NewCreateGroupCartCommand constructor",
)

type CreateGroupCartCommand struct {
	cartID kernel.UUID
	hostID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateGroupCartCommand(cartID, hostID kernel.UUID) (CreateGroupCartCommand, error) {
	if err := errors.Join(cartID.Validate(), hostID.Validate()); err != nil {
		return CreateGroupCartCommand{}, err
	}
	return CreateGroupCartCommand{
		cartID: cartID,
		hostID: hostID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateGroupCartCommand) Validate() error {
	return c.guard.Validate(ErrCreateGroupCartCommandIsNotConstructed)
}

func (c CreateGroupCartCommand) CartID() kernel.UUID { return c.cartID }
func (c CreateGroupCartCommand) HostID() kernel.UUID { return c.hostID }
