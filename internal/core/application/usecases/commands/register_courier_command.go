package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterCourierCommandIsNotConstructed = errors.New(
	"RegisterCourierCommand must be created via NewRegisterCourierCommand constructor",
)

// RegisterCourierCommand creates the courier profile for an authenticated
// courier account. The profile id is the account id.
type RegisterCourierCommand struct {
	courierID kernel.UUID
	name      string

	guard guard.ConstructorGuard
}

func NewRegisterCourierCommand(courierID kernel.UUID, name string) (RegisterCourierCommand, error) {
	if err := courierID.Validate(); err != nil {
		return RegisterCourierCommand{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return RegisterCourierCommand{}, courier.ErrNameIsRequired
	}
	return RegisterCourierCommand{
		courierID: courierID,
		name:      name,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterCourierCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCourierCommandIsNotConstructed)
}

func (c RegisterCourierCommand) CourierID() kernel.UUID { return c.courierID }
func (c RegisterCourierCommand) Name() string           { return c.name }
