package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateCourierStatusCommandIsNotConstructed = errors.New(
	"UpdateCourierStatusCommand must be created via NewUpdateCourierStatusCommand constructor",
)

// UpdateCourierStatusCommand is a presence ping. A nil location keeps the
// last known position.
type UpdateCourierStatusCommand struct {
	courierID kernel.UUID
	online    bool
	location  *kernel.Location

	guard guard.ConstructorGuard
}

func NewUpdateCourierStatusCommand(
	courierID kernel.UUID,
	online bool,
	location *kernel.Location,
) (UpdateCourierStatusCommand, error) {
	if err := courierID.Validate(); err != nil {
		return UpdateCourierStatusCommand{}, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return UpdateCourierStatusCommand{}, err
		}
	}
	return UpdateCourierStatusCommand{
		courierID: courierID,
		online:    online,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierStatusCommandIsNotConstructed)
}

func (c UpdateCourierStatusCommand) CourierID() kernel.UUID     { return c.courierID }
func (c UpdateCourierStatusCommand) Online() bool               { return c.online }
func (c UpdateCourierStatusCommand) Location() *kernel.Location { return c.location }
