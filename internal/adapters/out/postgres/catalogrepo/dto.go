// Package catalogrepo reads vendors and menu items. The tables are owned by
// the menu service; this package only maps them.
package catalogrepo

import (
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VendorDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"type:varchar(255);not null"`
	IsOpen bool      `gorm:"not null"`
	Lat    float64   `gorm:"not null"`
	Lng    float64   `gorm:"not null"`
}

func (VendorDTO) TableName() string {
	return "vendors"
}

type MenuItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VendorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IsAvailable bool            `gorm:"not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func vendorToDomain(dto VendorDTO) (catalog.Vendor, error) {
	loc, err := kernel.NewLocation(dto.Lat, dto.Lng)
	if err != nil {
		return catalog.Vendor{}, err
	}
	return catalog.Vendor{
		ID:       kernel.MustUUIDFromUUID(dto.ID),
		Name:     dto.Name,
		IsOpen:   dto.IsOpen,
		Location: loc,
	}, nil
}

func menuItemToDomain(dto MenuItemDTO) catalog.MenuItem {
	return catalog.MenuItem{
		ID:          kernel.MustUUIDFromUUID(dto.ID),
		VendorID:    kernel.MustUUIDFromUUID(dto.VendorID),
		Name:        dto.Name,
		Price:       dto.Price,
		IsAvailable: dto.IsAvailable,
	}
}
