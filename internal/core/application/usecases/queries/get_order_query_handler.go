package queries

import (
	"context"

	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown order and
// errs.ErrForbidden when the viewer is not a party to it.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	views, err := loadOrders(ctx, h.db, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, query.OrderID().Bytes())
	if err != nil {
		return OrderView{}, err
	}
	if len(views) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	view := views[0]
	if !view.IsParty(query.ViewerID()) {
		return OrderView{}, errs.NewForbiddenError("user "+query.ViewerID().String(), "view order "+view.ID.String())
	}
	return view, nil
}
