// Package settlementrepo stores one immutable settlement entry per delivered
// order. The unique order_id index is what makes a second settlement of the
// same order impossible.
package settlementrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/settlement"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	CourierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Collected     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Fee           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	BalanceChange decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	SettledAt     time.Time       `gorm:"not null"`
}

func (EntryDTO) TableName() string {
	return "settlements"
}

func fromDomain(e settlement.Entry) EntryDTO {
	return EntryDTO{
		ID:            e.ID().Bytes(),
		OrderID:       e.OrderID().Bytes(),
		CourierID:     e.CourierID().Bytes(),
		Collected:     e.Collected(),
		Fee:           e.Fee(),
		BalanceChange: e.BalanceChange(),
		SettledAt:     e.SettledAt(),
	}
}
