package courier

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is a delivery agent's profile.
//
// The cash balance is signed: positive means the courier owes the platform,
// negative means the platform owes the courier. The aggregate only reads it;
// settlements change it with an atomic increment in storage.
//
// ActiveOrder is the order the courier has claimed. A courier with an active
// order is never offered another one.
type Courier struct {
	id          kernel.UUID
	name        string
	online      bool
	location    *kernel.Location
	cashBalance decimal.Decimal
	activeOrder *kernel.UUID
	guard       guard.ConstructorGuard
}

// NewCourier onboards an offline courier with no known position and a zero balance.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	return RestoreCourier(id, name, false, nil, decimal.Zero, nil)
}

func RestoreCourier(
	id kernel.UUID,
	name string,
	online bool,
	location *kernel.Location,
	cashBalance decimal.Decimal,
	activeOrder *kernel.UUID,
) (*Courier, error) {
	c := &Courier{
		online:      online,
		cashBalance: cashBalance,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setLocation(location),
		c.setActiveOrder(activeOrder),
	); err != nil {
		return nil, err
	}

	c.guard = guard.NewConstructorGuard()
	return c, nil
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Courier) ID() kernel.UUID              { return c.id }
func (c *Courier) Name() string                 { return c.name }
func (c *Courier) IsOnline() bool               { return c.online }
func (c *Courier) Location() *kernel.Location   { return c.location }
func (c *Courier) CashBalance() decimal.Decimal { return c.cashBalance }
func (c *Courier) ActiveOrder() *kernel.UUID    { return c.activeOrder }

// IsAvailable reports whether the courier can be matched: online, with a known
// position and no claimed order.
func (c *Courier) IsAvailable() bool {
	return c.online && c.location != nil && c.activeOrder == nil
}

// UpdatePresence applies a status ping. A nil location keeps the last known one.
func (c *Courier) UpdatePresence(online bool, location *kernel.Location) error {
	if err := c.setLocation(location); err != nil {
		return err
	}
	c.online = online
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setLocation(location *kernel.Location) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	c.location = &loc
	return nil
}

func (c *Courier) setActiveOrder(orderID *kernel.UUID) error {
	if orderID == nil {
		c.activeOrder = nil
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	id := *orderID
	c.activeOrder = &id
	return nil
}
