package queries

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/groupcart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetGroupCartQueryIsNotConstructed = errors.New(
	"GetGroupCartQuery must be created via NewGetGroupCartQuery constructor",
)

// GetGroupCartQuery reads an open cart by its share code. Anyone holding the
// code may read it.
type GetGroupCartQuery struct {
	code groupcart.Code

	guard guard.ConstructorGuard
}

func NewGetGroupCartQuery(code string) (GetGroupCartQuery, error) {
	parsed, err := groupcart.LookupCode(code)
	if err != nil {
		return GetGroupCartQuery{}, err
	}
	return GetGroupCartQuery{code: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q GetGroupCartQuery) Validate() error {
	return q.guard.Validate(ErrGetGroupCartQueryIsNotConstructed)
}

func (q GetGroupCartQuery) Code() groupcart.Code { return q.code }

// GroupCartView prices the cart at current menu prices. The order created at
// checkout is priced again, so Subtotal is indicative.
type GroupCartView struct {
	ID       kernel.UUID
	Code     string
	HostID   kernel.UUID
	VendorID *kernel.UUID
	Items    []GroupCartItemView
	Subtotal decimal.Decimal
}

type GroupCartItemView struct {
	MenuItemID    kernel.UUID
	Name          string
	UnitPrice     decimal.Decimal
	Quantity      int
	Label         string
	ContributorID *kernel.UUID
	AddedAt       time.Time
}

type GetGroupCartQueryHandler struct {
	db *gorm.DB
}

func NewGetGroupCartQueryHandler(db *gorm.DB) GetGroupCartQueryHandler {
	return GetGroupCartQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown code and
// groupcart.ErrCartClosed for a cart that was checked out.
func (h GetGroupCartQueryHandler) Handle(ctx context.Context, query GetGroupCartQuery) (GroupCartView, error) {
	if err := query.Validate(); err != nil {
		return GroupCartView{}, err
	}

	var carts []struct {
		ID       uuid.UUID
		Code     string
		HostID   uuid.UUID
		VendorID *uuid.UUID
		IsActive bool
	}
	if err := h.db.WithContext(ctx).Raw(`
		SELECT id, code, host_id, vendor_id, is_active
		FROM group_carts
		WHERE code = ?
	`, query.Code().String()).Scan(&carts).Error; err != nil {
		return GroupCartView{}, err
	}
	if len(carts) == 0 {
		return GroupCartView{}, errs.NewObjectNotFoundError("group cart", query.Code())
	}
	cart := carts[0]
	if !cart.IsActive {
		return GroupCartView{}, groupcart.ErrCartClosed
	}

	var items []struct {
		MenuItemID    uuid.UUID
		Name          string
		Price         decimal.Decimal
		Quantity      int
		Label         string
		ContributorID *uuid.UUID
		AddedAt       time.Time
	}
	if err := h.db.WithContext(ctx).Raw(`
		SELECT gi.menu_item_id, m.name, m.price, gi.quantity, gi.label, gi.contributor_id, gi.added_at
		FROM group_cart_items gi
		JOIN menu_items m ON m.id = gi.menu_item_id
		WHERE gi.cart_id = ?
		ORDER BY gi.seq
	`, cart.ID).Scan(&items).Error; err != nil {
		return GroupCartView{}, err
	}

	view := GroupCartView{
		ID:       kernel.MustUUIDFromUUID(cart.ID),
		Code:     cart.Code,
		HostID:   kernel.MustUUIDFromUUID(cart.HostID),
		Subtotal: decimal.Zero,
		Items:    make([]GroupCartItemView, 0, len(items)),
	}
	if cart.VendorID != nil {
		view.VendorID = lo.ToPtr(kernel.MustUUIDFromUUID(*cart.VendorID))
	}
	for _, item := range items {
		line := GroupCartItemView{
			MenuItemID: kernel.MustUUIDFromUUID(item.MenuItemID),
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   item.Quantity,
			Label:      item.Label,
			AddedAt:    item.AddedAt,
		}
		if item.ContributorID != nil {
			line.ContributorID = lo.ToPtr(kernel.MustUUIDFromUUID(*item.ContributorID))
		}
		view.Items = append(view.Items, line)
		view.Subtotal = view.Subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return view, nil
}
