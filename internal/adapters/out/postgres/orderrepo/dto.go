// Package orderrepo persists order aggregates and their line items.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Money columns are numeric; status and modes are
// stored by name so ad-hoc SQL stays readable.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendorID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CourierID       *uuid.UUID      `gorm:"type:uuid;index"`
	Status          string          `gorm:"type:varchar(16);not null;index"`
	FulfillmentMode string          `gorm:"type:varchar(16);not null"`
	PaymentMode     string          `gorm:"type:varchar(16);not null"`
	Subtotal        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Tax             decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DeliveryFee     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaidUpfront     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DueOnDelivery   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DeliveryAddress string          `gorm:"type:text"`
	DeliveryLat     *float64
	DeliveryLng     *float64
	PickupLat       float64       `gorm:"not null"`
	PickupLng       float64       `gorm:"not null"`
	Version         int           `gorm:"not null;default:0"`
	CreatedAt       time.Time     `gorm:"not null"`
	UpdatedAt       time.Time     `gorm:"not null"`
	Items           []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO keeps the unit price captured when the order was created.
type LineItemDTO struct {
	OrderID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"primaryKey"`
	MenuItemID  uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Contributor string          `gorm:"type:varchar(255)"`
}

func (LineItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	charges := o.Charges()

	var courierID *uuid.UUID
	if id := o.Courier(); id != nil {
		courierID = lo.ToPtr(id.Bytes())
	}

	var lat, lng *float64
	if loc := o.DeliveryLocation(); loc != nil {
		lat, lng = lo.ToPtr(loc.Lat()), lo.ToPtr(loc.Lng())
	}

	items := lo.Map(o.Items(), func(item order.LineItem, i int) LineItemDTO {
		return LineItemDTO{
			OrderID:     orderID,
			Position:    i,
			MenuItemID:  item.MenuItemID().Bytes(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			Contributor: item.Contributor(),
		}
	})

	return OrderDTO{
		ID:              orderID,
		CustomerID:      o.CustomerID().Bytes(),
		VendorID:        o.VendorID().Bytes(),
		CourierID:       courierID,
		Status:          o.Status().String(),
		FulfillmentMode: string(o.Fulfillment()),
		PaymentMode:     string(o.Payment()),
		Subtotal:        charges.Subtotal(),
		Tax:             charges.Tax(),
		DeliveryFee:     charges.DeliveryFee(),
		Total:           charges.Total(),
		PaidUpfront:     charges.PaidUpfront(),
		DueOnDelivery:   charges.DueOnDelivery(),
		DeliveryAddress: o.DeliveryAddress(),
		DeliveryLat:     lat,
		DeliveryLng:     lng,
		PickupLat:       o.PickupLocation().Lat(),
		PickupLng:       o.PickupLocation().Lng(),
		Version:         o.Version(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Items:           items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	charges, err := order.NewCharges(dto.Subtotal, dto.Tax, dto.DeliveryFee, dto.PaidUpfront, dto.DueOnDelivery)
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewLocation(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}

	var delivery *kernel.Location
	if dto.DeliveryLat != nil && dto.DeliveryLng != nil {
		loc, locErr := kernel.NewLocation(*dto.DeliveryLat, *dto.DeliveryLng)
		if locErr != nil {
			return nil, locErr
		}
		delivery = &loc
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		courierID = lo.ToPtr(kernel.MustUUIDFromUUID(*dto.CourierID))
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		li, itemErr := order.NewLineItem(kernel.MustUUIDFromUUID(item.MenuItemID), item.Quantity, item.UnitPrice, item.Contributor)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, li)
	}

	return order.RestoreOrder(order.Snapshot{
		Draft: order.Draft{
			ID:               kernel.MustUUIDFromUUID(dto.ID),
			CustomerID:       kernel.MustUUIDFromUUID(dto.CustomerID),
			VendorID:         kernel.MustUUIDFromUUID(dto.VendorID),
			Items:            items,
			Charges:          charges,
			Fulfillment:      order.FulfillmentMode(dto.FulfillmentMode),
			Payment:          order.PaymentMode(dto.PaymentMode),
			DeliveryAddress:  dto.DeliveryAddress,
			DeliveryLocation: delivery,
			PickupLocation:   pickup,
			CreatedAt:        dto.CreatedAt,
		},
		CourierID: courierID,
		Status:    status,
		Version:   dto.Version,
		UpdatedAt: dto.UpdatedAt,
	})
}
