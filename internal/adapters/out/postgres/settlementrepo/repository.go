package settlementrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormSettlementRepository struct {
	db *gorm.DB
}

func NewGormSettlementRepository(db *gorm.DB) *GormSettlementRepository {
	return &GormSettlementRepository{db: db}
}

// Add relies on gorm's error translation (gorm.Config.TranslateError) to
// recognise the duplicate order.
func (r *GormSettlementRepository) Add(ctx context.Context, entry settlement.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewInvalidStateErrorWithCause("order "+entry.OrderID().String(), "DELIVERED", "settle", err)
	}
	return err
}
