// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work wraps one database transaction and hands out
// repositories bound to it, so an order mutation and its audit entry commit
// or roll back together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
//	    return err
//	}
//	if _, err := uow.AuditRepository().Append(ctx, entry); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency considerations:
//   - Each UnitOfWork instance owns exactly one transaction; goroutines must
//     use separate instances.
//   - Per-order serialization comes from OrderRepository.GetForUpdate, which
//     takes the order's row lock inside this transaction.
//   - Keep transactions short: the row lock is held until Commit or Rollback.
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/auditrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// This is useful for implementing patterns like event sourcing or outbox pattern.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{} // Will be changed to a common Aggregate interface in the future
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The provided database connection is shared by all created
// instances; transactions are per instance.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks aggregate
// changes made within it. Repositories obtained from it execute within the
// current transaction once Begin has been called.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls on the same instance are safe and will not create nested
// transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit the transaction is closed and cannot be reused.
// Returns error if no active transaction exists or if the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// After a successful Commit the transaction is already closed, so the
// deferred rollback in command handlers returns ErrInvalidTransaction and is
// ignored there.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository provides access to order persistence within the unit of
// work. Operations execute within the current transaction if one is active,
// otherwise they use the main database connection.
//
// The returned repository tracks all order aggregates that are added or
// updated within this unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// AuditRepository provides access to the append-only audit log within the
// unit of work. Appends execute within the current transaction if one is
// active, which is what makes the audit entry atomic with the order mutation
// it describes.
func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return auditrepo.NewGormAuditRepository(db)
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Called by repository implementations when aggregates are added or
// updated.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
