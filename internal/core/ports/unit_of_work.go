package ports

import (
	"context"
)

// UnitOfWorkFactory creates one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary. Events recorded by aggregates written
// through its repositories are handed to the EventSink after Commit succeeds
// and dropped on Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CourierRepository() CourierRepository
	GroupCartRepository() GroupCartRepository
	SettlementRepository() SettlementRepository
	CatalogRepository() CatalogRepository
}
