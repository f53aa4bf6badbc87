package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/groupcart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAddGroupCartItemCommandIsNotConstructed = errors.New(
	"AddGroupCartItemCommand must be created via NewAddGroupCartItemCommand constructor",
)

// AddGroupCartItemCommand adds a line to a shared cart. Contributors need
// only the code; ContributorID is set when the caller is signed in.
type AddGroupCartItemCommand struct {
	code          groupcart.Code
	menuItemID    kernel.UUID
	quantity      int
	label         string
	contributorID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAddGroupCartItemCommand(
	code string,
	menuItemID kernel.UUID,
	quantity int,
	label string,
	contributorID *kernel.UUID,
) (AddGroupCartItemCommand, error) {
	parsed, err := groupcart.LookupCode(code)
	if err != nil {
		return AddGroupCartItemCommand{}, err
	}
	if err = menuItemID.Validate(); err != nil {
		return AddGroupCartItemCommand{}, err
	}
	if quantity <= 0 {
		return AddGroupCartItemCommand{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if contributorID != nil {
		if err = contributorID.Validate(); err != nil {
			return AddGroupCartItemCommand{}, err
		}
	}

	return AddGroupCartItemCommand{
		code:          parsed,
		menuItemID:    menuItemID,
		quantity:      quantity,
		label:         strings.TrimSpace(label),
		contributorID: contributorID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c AddGroupCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddGroupCartItemCommandIsNotConstructed)
}

func (c AddGroupCartItemCommand) Code() groupcart.Code        { return c.code }
func (c AddGroupCartItemCommand) MenuItemID() kernel.UUID     { return c.menuItemID }
func (c AddGroupCartItemCommand) Quantity() int               { return c.quantity }
func (c AddGroupCartItemCommand) Label() string               { return c.label }
func (c AddGroupCartItemCommand) ContributorID() *kernel.UUID { return c.contributorID }
