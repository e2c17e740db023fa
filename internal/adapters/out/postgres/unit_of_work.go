// Package postgres provides the GORM-based Unit of Work for the shop.
// A unit of work owns one database transaction, hands out repositories bound to
// it, and on Commit writes the domain events of every aggregate touched by those
// repositories to the outbox before the transaction commits.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns one transaction and must not be shared between goroutines
//   - Rows read with GetForUpdate stay locked until Commit or Rollback
package postgres

import (
	"context"
	"fmt"

	"shop/internal/adapters/out/postgres/orderrepo"
	"shop/internal/adapters/out/postgres/outboxrepo"
	"shop/internal/adapters/out/postgres/pgerr"
	"shop/internal/adapters/out/postgres/productrepo"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that record order events.
type eventSource interface {
	DomainEvents() []order.Event
	ClearDomainEvents()
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.New()
}

// New is Create with the concrete type, for callers that need TrackedAggregates.
func (f *GormUnitOfWorkFactory) New() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin twice is a no-op.
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

// Commit appends pending domain events of the tracked aggregates to the outbox
// and commits. Events are cleared from the aggregates only after a successful
// commit. On an outbox failure the transaction stays open so that the caller's
// Rollback discards it.
//
// Serialization failures and deadlocks come back as errs.ErrVersionIsInvalid.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	sources := uow.eventSources()
	var events []order.Event
	for _, source := range sources {
		events = append(events, source.DomainEvents()...)
	}

	if err := outboxrepo.NewGormOutboxRepository(uow.tx).Append(ctx, events); err != nil {
		return fmt.Errorf("write outbox: %w", err)
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return pgerr.Classify(err, "transaction")
	}

	for _, source := range sources {
		source.ClearDomainEvents()
	}
	return nil
}

// Rollback discards the transaction and forgets tracked aggregates. Without an
// active transaction it returns gorm.ErrInvalidTransaction, which makes a
// deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// ProductRepository returns a ProductRepository bound to the current
// transaction, or to the plain connection when none is active.
func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn(), uow)
}

// OrderRepository returns an OrderRepository bound to the current transaction,
// or to the plain connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// OutboxRepository returns an OutboxRepository bound to the current
// transaction, or to the plain connection when none is active.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates written since Begin.
func (uow *GormUnitOfWork) TrackedAggregates() []any {
	aggregates := make([]any, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		aggregates = append(aggregates, tracked.Aggregate)
	}
	return aggregates
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// eventSources returns each tracked event source once, in tracking order.
func (uow *GormUnitOfWork) eventSources() []eventSource {
	seen := make(map[any]struct{}, len(uow.trackedAggregates))
	sources := make([]eventSource, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		if _, dup := seen[tracked.Aggregate]; dup {
			continue
		}
		seen[tracked.Aggregate] = struct{}{}
		sources = append(sources, source)
	}
	return sources
}
