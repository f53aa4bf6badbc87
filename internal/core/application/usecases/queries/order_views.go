package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is an order as its parties see it.
type OrderView struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	VendorID         kernel.UUID
	CourierID        *kernel.UUID
	Status           string
	Fulfillment      string
	Payment          string
	Subtotal         decimal.Decimal
	Tax              decimal.Decimal
	DeliveryFee      decimal.Decimal
	Total            decimal.Decimal
	PaidUpfront      decimal.Decimal
	DueOnDelivery    decimal.Decimal
	DeliveryAddress  string
	DeliveryLocation *kernel.Location
	PickupLocation   kernel.Location
	Items            []OrderItemView
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type OrderItemView struct {
	MenuItemID  kernel.UUID
	Quantity    int
	UnitPrice   decimal.Decimal
	Contributor string
}

// IsParty reports whether actor is the customer, vendor or courier of the order.
func (v OrderView) IsParty(actor kernel.UUID) bool {
	return v.CustomerID.IsEqual(actor) || v.VendorID.IsEqual(actor) || kernel.OptionalUUIDEqual(v.CourierID, actor)
}

type orderRow struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	VendorID        uuid.UUID
	CourierID       *uuid.UUID
	Status          string
	FulfillmentMode string
	PaymentMode     string
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	DeliveryFee     decimal.Decimal
	Total           decimal.Decimal
	PaidUpfront     decimal.Decimal
	DueOnDelivery   decimal.Decimal
	DeliveryAddress string
	DeliveryLat     *float64
	DeliveryLng     *float64
	PickupLat       float64
	PickupLng       float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type orderItemRow struct {
	OrderID     uuid.UUID
	MenuItemID  uuid.UUID
	Quantity    int
	UnitPrice   decimal.Decimal
	Contributor string
}

const orderColumns = `
	id, customer_id, vendor_id, courier_id, status, fulfillment_mode, payment_mode,
	subtotal, tax, delivery_fee, total, paid_upfront, due_on_delivery,
	delivery_address, delivery_lat, delivery_lng, pickup_lat, pickup_lng,
	created_at, updated_at`

var terminalStatuses = []string{order.Delivered.String(), order.Cancelled.String()}

// loadOrders runs an orders query and attaches the line items of every row.
func loadOrders(ctx context.Context, db *gorm.DB, sql string, args ...any) ([]OrderView, error) {
	var rows []orderRow
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []OrderView{}, nil
	}

	var items []orderItemRow
	ids := lo.Map(rows, func(r orderRow, _ int) uuid.UUID { return r.ID })
	if err := db.WithContext(ctx).Raw(`
		SELECT order_id, menu_item_id, quantity, unit_price, contributor
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Scan(&items).Error; err != nil {
		return nil, err
	}
	byOrder := lo.GroupBy(items, func(i orderItemRow) uuid.UUID { return i.OrderID })

	views := make([]OrderView, 0, len(rows))
	for _, r := range rows {
		view, err := r.toView(byOrder[r.ID])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (r orderRow) toView(items []orderItemRow) (OrderView, error) {
	pickup, err := kernel.NewLocation(r.PickupLat, r.PickupLng)
	if err != nil {
		return OrderView{}, err
	}

	view := OrderView{
		ID:              kernel.MustUUIDFromUUID(r.ID),
		CustomerID:      kernel.MustUUIDFromUUID(r.CustomerID),
		VendorID:        kernel.MustUUIDFromUUID(r.VendorID),
		Status:          r.Status,
		Fulfillment:     r.FulfillmentMode,
		Payment:         r.PaymentMode,
		Subtotal:        r.Subtotal,
		Tax:             r.Tax,
		DeliveryFee:     r.DeliveryFee,
		Total:           r.Total,
		PaidUpfront:     r.PaidUpfront,
		DueOnDelivery:   r.DueOnDelivery,
		DeliveryAddress: r.DeliveryAddress,
		PickupLocation:  pickup,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Items: lo.Map(items, func(i orderItemRow, _ int) OrderItemView {
			return OrderItemView{
				MenuItemID:  kernel.MustUUIDFromUUID(i.MenuItemID),
				Quantity:    i.Quantity,
				UnitPrice:   i.UnitPrice,
				Contributor: i.Contributor,
			}
		}),
	}

	if r.CourierID != nil {
		view.CourierID = lo.ToPtr(kernel.MustUUIDFromUUID(*r.CourierID))
	}
	if r.DeliveryLat != nil && r.DeliveryLng != nil {
		loc, err := kernel.NewLocation(*r.DeliveryLat, *r.DeliveryLng)
		if err != nil {
			return OrderView{}, err
		}
		view.DeliveryLocation = &loc
	}
	return view, nil
}
