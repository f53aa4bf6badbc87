// Package courierrepo persists courier profiles. Presence, claims and
// balance changes are separate narrow updates so they never overwrite each
// other.
package courierrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type CourierDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(255);not null"`
	IsOnline      bool            `gorm:"not null;default:false;index"`
	Lat           *float64        `gorm:"column:lat"`
	Lng           *float64        `gorm:"column:lng"`
	CashBalance   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ActiveOrderID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(c *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:          c.ID().Bytes(),
		Name:        c.Name(),
		IsOnline:    c.IsOnline(),
		CashBalance: c.CashBalance(),
	}
	if loc := c.Location(); loc != nil {
		dto.Lat, dto.Lng = lo.ToPtr(loc.Lat()), lo.ToPtr(loc.Lng())
	}
	if id := c.ActiveOrder(); id != nil {
		dto.ActiveOrderID = lo.ToPtr(id.Bytes())
	}
	return dto
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	var location *kernel.Location
	if dto.Lat != nil && dto.Lng != nil {
		loc, err := kernel.NewLocation(*dto.Lat, *dto.Lng)
		if err != nil {
			return nil, err
		}
		location = &loc
	}

	var activeOrder *kernel.UUID
	if dto.ActiveOrderID != nil {
		activeOrder = lo.ToPtr(kernel.MustUUIDFromUUID(*dto.ActiveOrderID))
	}

	return courier.RestoreCourier(
		kernel.MustUUIDFromUUID(dto.ID),
		dto.Name,
		dto.IsOnline,
		location,
		dto.CashBalance,
		activeOrder,
	)
}
