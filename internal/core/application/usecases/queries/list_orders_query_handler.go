package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type GetVendorOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetVendorOrdersQueryHandler(db *gorm.DB) GetVendorOrdersQueryHandler {
	return GetVendorOrdersQueryHandler{db: db}
}

func (h GetVendorOrdersQueryHandler) Handle(ctx context.Context, query GetVendorOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return listOrders(ctx, h.db, "vendor_id", query.VendorID(), query.IncludeTerminal())
}

type GetCourierOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetCourierOrdersQueryHandler(db *gorm.DB) GetCourierOrdersQueryHandler {
	return GetCourierOrdersQueryHandler{db: db}
}

func (h GetCourierOrdersQueryHandler) Handle(ctx context.Context, query GetCourierOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return listOrders(ctx, h.db, "courier_id", query.CourierID(), query.IncludeTerminal())
}

// listOrders filters on column, which is always one of the constants above.
func listOrders(ctx context.Context, db *gorm.DB, column string, id kernel.UUID, includeTerminal bool) ([]OrderView, error) {
	if includeTerminal {
		return loadOrders(ctx, db,
			`SELECT `+orderColumns+` FROM orders WHERE `+column+` = ? ORDER BY created_at DESC, id`,
			id.Bytes())
	}
	return loadOrders(ctx, db,
		`SELECT `+orderColumns+` FROM orders WHERE `+column+` = ? AND status NOT IN ? ORDER BY created_at DESC, id`,
		id.Bytes(), terminalStatuses)
}
