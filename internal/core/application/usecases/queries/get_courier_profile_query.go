package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetCourierProfileQueryIsNotConstructed = errors.New(
	"GetCourierProfileQuery must be created via NewGetCourierProfileQuery constructor",
)

type GetCourierProfileQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCourierProfileQuery(courierID kernel.UUID) (GetCourierProfileQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierProfileQuery{}, err
	}
	return GetCourierProfileQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCourierProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierProfileQueryIsNotConstructed)
}

func (q GetCourierProfileQuery) CourierID() kernel.UUID { return q.courierID }

// CourierProfile is presence plus the signed cash balance: positive means the
// courier owes the platform.
type CourierProfile struct {
	ID            kernel.UUID
	Name          string
	IsOnline      bool
	Location      *kernel.Location
	CashBalance   decimal.Decimal
	ActiveOrderID *kernel.UUID
}

type GetCourierProfileQueryHandler struct {
	db *gorm.DB
}

func NewGetCourierProfileQueryHandler(db *gorm.DB) GetCourierProfileQueryHandler {
	return GetCourierProfileQueryHandler{db: db}
}

func (h GetCourierProfileQueryHandler) Handle(ctx context.Context, query GetCourierProfileQuery) (CourierProfile, error) {
	if err := query.Validate(); err != nil {
		return CourierProfile{}, err
	}

	var rows []struct {
		ID            uuid.UUID
		Name          string
		IsOnline      bool
		Lat           *float64
		Lng           *float64
		CashBalance   decimal.Decimal
		ActiveOrderID *uuid.UUID
	}
	if err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, is_online, lat, lng, cash_balance, active_order_id
		FROM couriers
		WHERE id = ?
	`, query.CourierID().Bytes()).Scan(&rows).Error; err != nil {
		return CourierProfile{}, err
	}
	if len(rows) == 0 {
		return CourierProfile{}, errs.NewObjectNotFoundError("courier", query.CourierID())
	}

	row := rows[0]
	profile := CourierProfile{
		ID:          kernel.MustUUIDFromUUID(row.ID),
		Name:        row.Name,
		IsOnline:    row.IsOnline,
		CashBalance: row.CashBalance,
	}
	if row.Lat != nil && row.Lng != nil {
		loc, err := kernel.NewLocation(*row.Lat, *row.Lng)
		if err != nil {
			return CourierProfile{}, err
		}
		profile.Location = &loc
	}
	if row.ActiveOrderID != nil {
		profile.ActiveOrderID = lo.ToPtr(kernel.MustUUIDFromUUID(*row.ActiveOrderID))
	}
	return profile, nil
}
