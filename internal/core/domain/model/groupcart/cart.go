package groupcart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

const DefaultContributorLabel = "Guest"

var (
	ErrCartClosed           = errors.New("group cart is closed")
	ErrCartEmpty            = errors.New("group cart is empty")
	ErrMixedVendors         = errors.New("group cart items must come from a single vendor")
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart")
)

// Contribution is one line added to a shared cart. It records what was
// asked for, not what it costs: prices are resolved at checkout.
type Contribution struct {
	ID            kernel.UUID
	MenuItemID    kernel.UUID
	VendorID      kernel.UUID
	Quantity      int
	Label         string
	ContributorID *kernel.UUID
	AddedAt       time.Time
}

// Cart is a code-addressable basket filled by several people and converted
// into exactly one order by its host. Once inactive it never changes again.
type Cart struct {
	id            kernel.UUID
	code          Code
	hostID        kernel.UUID
	vendorID      *kernel.UUID
	active        bool
	items         []Contribution
	createdAt     time.Time
	isConstructed bool
}

func NewCart(id kernel.UUID, code Code, hostID kernel.UUID, createdAt time.Time) (*Cart, error) {
	return RestoreCart(id, code, hostID, nil, true, nil, createdAt)
}

func RestoreCart(
	id kernel.UUID,
	code Code,
	hostID kernel.UUID,
	vendorID *kernel.UUID,
	active bool,
	items []Contribution,
	createdAt time.Time,
) (*Cart, error) {
	if err := errors.Join(id.Validate(), hostID.Validate()); err != nil {
		return nil, err
	}
	if _, err := ParseCode(code.String()); err != nil {
		return nil, err
	}

	c := &Cart{
		id:        id,
		code:      code,
		hostID:    hostID,
		vendorID:  vendorID,
		active:    active,
		items:     append([]Contribution(nil), items...),
		createdAt: createdAt,
	}
	if c.vendorID == nil && len(c.items) > 0 {
		v := c.items[0].VendorID
		c.vendorID = &v
	}

	c.isConstructed = true
	return c, nil
}

func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

func (c *Cart) ID() kernel.UUID        { return c.id }
func (c *Cart) Code() Code             { return c.code }
func (c *Cart) HostID() kernel.UUID    { return c.hostID }
func (c *Cart) VendorID() *kernel.UUID { return c.vendorID }
func (c *Cart) IsActive() bool         { return c.active }
func (c *Cart) CreatedAt() time.Time   { return c.createdAt }

func (c *Cart) Items() []Contribution {
	return append([]Contribution(nil), c.items...)
}

// AddItem appends a contribution. Anyone holding the code may contribute.
// The first contribution fixes the cart's vendor.
func (c *Cart) AddItem(
	menuItemID, vendorID kernel.UUID,
	quantity int,
	label string,
	contributorID *kernel.UUID,
	now time.Time,
) (Contribution, error) {
	if !c.active {
		return Contribution{}, ErrCartClosed
	}
	if err := errors.Join(menuItemID.Validate(), vendorID.Validate()); err != nil {
		return Contribution{}, err
	}
	if quantity <= 0 {
		return Contribution{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if c.vendorID != nil && !c.vendorID.IsEqual(vendorID) {
		return Contribution{}, ErrMixedVendors
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultContributorLabel
	}

	item := Contribution{
		ID:            kernel.NewUUID(),
		MenuItemID:    menuItemID,
		VendorID:      vendorID,
		Quantity:      quantity,
		Label:         label,
		ContributorID: contributorID,
		AddedAt:       now,
	}
	c.items = append(c.items, item)
	if c.vendorID == nil {
		c.vendorID = &vendorID
	}
	return item, nil
}

// Checkout closes the cart on behalf of its host. The caller converts the
// contributions into an order in the same transaction that persists the close.
func (c *Cart) Checkout(hostID kernel.UUID) error {
	if !c.hostID.IsEqual(hostID) {
		return errs.NewForbiddenError("user "+hostID.String(), "check out group cart "+c.code.String())
	}
	if !c.active {
		return ErrCartClosed
	}
	if len(c.items) == 0 {
		return ErrCartEmpty
	}
	c.active = false
	return nil
}
