// Package postgres provides the GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes and resolving concurrency problems.
//
// Key Features:
//   - Transaction management across the order, idempotency and outbox tables
//   - Aggregate tracking: on Commit the domain events of every saved order are appended to
//     the outbox inside the same transaction (transactional outbox)
//   - Repository factory pattern for consistent database connections
//
// Usage Patterns:
//
//	factory := NewGormUnitOfWorkFactory(db, "order.status-changed")
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	o, err := uow.OrderRepository().Load(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if err = o.Archive(); err != nil {
//	    return err
//	}
//	if err = uow.OrderRepository().Save(ctx, o, o.Version()); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx) // order row, items and outbox rows commit together
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Lost updates are prevented by the version check of OrderRepository.Save, not by locks
package postgres

import (
	"context"

	"quoteflow/internal/adapters/out/postgres/idempotencyrepo"
	"quoteflow/internal/adapters/out/postgres/orderrepo"
	"quoteflow/internal/adapters/out/postgres/outboxrepo"
	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate added or saved during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	DomainEvents() []order.StatusChanged
	ClearDomainEvents()
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db         *gorm.DB
	eventTopic string
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// eventTopic is the broker topic recorded on outbox rows.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, cfg.KafkaOrderChangedTopic)
func NewGormUnitOfWorkFactory(db *gorm.DB, eventTopic string) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, eventTopic: eventTopic}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.create()
}

func (f *GormUnitOfWorkFactory) create() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		eventTopic:        f.eventTopic,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork implements ports.UnitOfWork on one GORM transaction.
// Repositories obtained before Begin use the plain connection; obtain them after Begin
// to take part in the transaction.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	eventTopic        string
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit appends the pending events of tracked aggregates to the outbox and commits.
// If appending fails the transaction is rolled back and nothing is stored.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.flushEvents(ctx); err != nil {
		_ = uow.tx.Rollback()
		uow.tx = nil
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// Rollback discards the transaction. After Commit it returns gorm.ErrInvalidTransaction,
// which deferred calls ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) IdempotencyStore() ports.IdempotencyStore {
	return idempotencyrepo.NewGormIdempotencyStore(uow.conn())
}

// TrackAggregate registers an aggregate whose events are flushed on Commit.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for _, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) && tracked.Aggregate == aggregate {
			return
		}
	}

	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) flushEvents(ctx context.Context) error {
	outbox := outboxrepo.NewGormOutbox(uow.tx)
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}

		if err := outbox.Append(ctx, uow.eventTopic, source.DomainEvents()); err != nil {
			return err
		}
		source.ClearDomainEvents()
	}
	return nil
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
