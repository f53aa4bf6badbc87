package postgres

import (
	"strings"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/courierrepo"
	"fulfillment/internal/adapters/out/postgres/groupcartrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/settlementrepo"

	"gorm.io/gorm"
)

func models() []any {
	return []any{
		&catalogrepo.VendorDTO{},
		&catalogrepo.MenuItemDTO{},
		&courierrepo.CourierDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&groupcartrepo.GroupCartDTO{},
		&groupcartrepo.ContributionDTO{},
		&settlementrepo.EntryDTO{},
	}
}

// Migrate creates or alters every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models()...)
}

// Truncate empties every table. Tests only.
func Truncate(db *gorm.DB) error {
	tables := []string{
		"settlements", "group_cart_items", "group_carts", "order_items", "orders",
		"couriers", "menu_items", "vendors",
	}
	return db.Exec("TRUNCATE TABLE " + strings.Join(tables, ", ") + " CASCADE").Error
}
