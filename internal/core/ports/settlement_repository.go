package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/settlement"
)

type SettlementRepository interface {
	// Add records the entry. A second entry for the same order is rejected by
	// the store and fails with an InvalidState error.
	Add(ctx context.Context, entry settlement.Entry) error
}
