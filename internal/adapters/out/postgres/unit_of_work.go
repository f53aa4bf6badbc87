// Package postgres implements the unit of work over a gorm transaction.
//
// Repositories handed out by a GormUnitOfWork share its transaction once
// Begin has been called. Aggregates they write are tracked, and their
// recorded domain events are handed to the EventSink only after Commit
// succeeds:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx) // o's events are dispatched here
//
// Rollback after a successful Commit is a harmless no-op error, which is why
// handlers may defer it unconditionally.
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/courierrepo"
	"fulfillment/internal/adapters/out/postgres/groupcartrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/settlementrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// eventSource is implemented by aggregates embedding kernel.EventRecorder.
type eventSource interface {
	DomainEvents() []kernel.DomainEvent
	ClearDomainEvents()
}

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type GormUnitOfWorkFactory struct {
	db   *gorm.DB
	sink ports.EventSink
}

// NewGormUnitOfWorkFactory builds units of work on db. sink may be nil, in
// which case events are discarded after commit.
func NewGormUnitOfWorkFactory(db *gorm.DB, sink ports.EventSink) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, sink: sink}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:   f.db,
		sink: f.sink,
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	sink              ports.EventSink
	trackedAggregates []trackedAggregate
}

// Begin is idempotent while a transaction is open.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = nil
		return err
	}

	uow.flushEvents()
	return nil
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.trackedAggregates = nil
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) GroupCartRepository() ports.GroupCartRepository {
	return groupcartrepo.NewGormGroupCartRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SettlementRepository() ports.SettlementRepository {
	return settlementrepo.NewGormSettlementRepository(uow.conn())
}

func (uow *GormUnitOfWork) CatalogRepository() ports.CatalogRepository {
	return catalogrepo.NewGormCatalogRepository(uow.conn())
}

// TrackAggregate is called by repositories after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// flushEvents collects events in write order. An aggregate written twice is
// drained on its first occurrence.
func (uow *GormUnitOfWork) flushEvents() {
	var events []kernel.DomainEvent
	for _, tracked := range uow.trackedAggregates {
		src, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		events = append(events, src.DomainEvents()...)
		src.ClearDomainEvents()
	}
	uow.trackedAggregates = nil

	if len(events) > 0 && uow.sink != nil {
		uow.sink.Dispatch(events...)
	}
}
