// Package groupcartrepo persists group carts and their contributions.
package groupcartrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/groupcart"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type GroupCartDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code      string     `gorm:"type:char(6);not null;uniqueIndex"`
	HostID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	VendorID  *uuid.UUID `gorm:"type:uuid"`
	IsActive  bool       `gorm:"not null"`
	CreatedAt time.Time  `gorm:"not null"`
}

func (GroupCartDTO) TableName() string {
	return "group_carts"
}

// ContributionDTO rows are ordered by Seq, the insertion order.
type ContributionDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq           int64      `gorm:"autoIncrement;not null;index"`
	CartID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	MenuItemID    uuid.UUID  `gorm:"type:uuid;not null"`
	VendorID      uuid.UUID  `gorm:"type:uuid;not null"`
	Quantity      int        `gorm:"not null"`
	Label         string     `gorm:"type:varchar(255);not null"`
	ContributorID *uuid.UUID `gorm:"type:uuid"`
	AddedAt       time.Time  `gorm:"not null"`
}

func (ContributionDTO) TableName() string {
	return "group_cart_items"
}

func fromDomain(c *groupcart.Cart) GroupCartDTO {
	dto := GroupCartDTO{
		ID:        c.ID().Bytes(),
		Code:      c.Code().String(),
		HostID:    c.HostID().Bytes(),
		IsActive:  c.IsActive(),
		CreatedAt: c.CreatedAt(),
	}
	if v := c.VendorID(); v != nil {
		dto.VendorID = lo.ToPtr(v.Bytes())
	}
	return dto
}

func contributionFromDomain(cartID kernel.UUID, item groupcart.Contribution) ContributionDTO {
	dto := ContributionDTO{
		ID:         item.ID.Bytes(),
		CartID:     cartID.Bytes(),
		MenuItemID: item.MenuItemID.Bytes(),
		VendorID:   item.VendorID.Bytes(),
		Quantity:   item.Quantity,
		Label:      item.Label,
		AddedAt:    item.AddedAt,
	}
	if item.ContributorID != nil {
		dto.ContributorID = lo.ToPtr(item.ContributorID.Bytes())
	}
	return dto
}

func toDomain(dto GroupCartDTO, items []ContributionDTO) (*groupcart.Cart, error) {
	code, err := groupcart.ParseCode(dto.Code)
	if err != nil {
		return nil, err
	}

	var vendorID *kernel.UUID
	if dto.VendorID != nil {
		vendorID = lo.ToPtr(kernel.MustUUIDFromUUID(*dto.VendorID))
	}

	contributions := lo.Map(items, func(item ContributionDTO, _ int) groupcart.Contribution {
		var contributor *kernel.UUID
		if item.ContributorID != nil {
			contributor = lo.ToPtr(kernel.MustUUIDFromUUID(*item.ContributorID))
		}
		return groupcart.Contribution{
			ID:            kernel.MustUUIDFromUUID(item.ID),
			MenuItemID:    kernel.MustUUIDFromUUID(item.MenuItemID),
			VendorID:      kernel.MustUUIDFromUUID(item.VendorID),
			Quantity:      item.Quantity,
			Label:         item.Label,
			ContributorID: contributor,
			AddedAt:       item.AddedAt,
		}
	})

	return groupcart.RestoreCart(
		kernel.MustUUIDFromUUID(dto.ID),
		code,
		kernel.MustUUIDFromUUID(dto.HostID),
		vendorID,
		dto.IsActive,
		contributions,
		dto.CreatedAt,
	)
}
