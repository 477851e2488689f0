// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. The Unit of Work maintains a list of aggregates affected by a
// business transaction and coordinates writing out changes atomically:
// log appends, cache updates, member rows and outbox events either all
// commit or all roll back.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.PackageRepository().Add(ctx, pkg); err != nil {
//	    return err
//	}
//	if _, err := uow.PackageLogRepository().Append(ctx, entry); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns its own transaction; concurrent goroutines
// must use separate instances obtained from the factory.
package postgres

import (
	"context"

	"freightops/internal/adapters/out/postgres/outboxrepo"
	"freightops/internal/adapters/out/postgres/parcelrepo"
	"freightops/internal/adapters/out/postgres/shipmentrepo"
	"freightops/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        string
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Each Create call returns a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
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

// GormUnitOfWork coordinates one database transaction across the package,
// shipment, log and outbox repositories. Repositories obtained from it run
// inside the active transaction, or against the main connection when no
// transaction was begun.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction. Calling Begin again on the
// same instance is a no-op, it never nests transactions.
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

// Commit finalizes all changes made within the current transaction. After
// commit the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction. After
// rollback the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// PackageRepository provides package persistence within the unit of work.
func (uow *GormUnitOfWork) PackageRepository() ports.PackageRepository {
	return parcelrepo.NewGormPackageRepository(uow.session(), uow)
}

// PackageLogRepository provides package status log persistence within the
// unit of work.
func (uow *GormUnitOfWork) PackageLogRepository() ports.PackageLogRepository {
	return parcelrepo.NewGormPackageLogRepository(uow.session())
}

// ShipmentRepository provides shipment persistence within the unit of work.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.session(), uow)
}

// ShipmentLogRepository provides shipment status log persistence within the
// unit of work.
func (uow *GormUnitOfWork) ShipmentLogRepository() ports.ShipmentLogRepository {
	return shipmentrepo.NewGormShipmentLogRepository(uow.session())
}

// OutboxRepository provides outbox event persistence within the unit of
// work, so events commit atomically with the log appends they describe.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.session())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Repository implementations call it on Add and Update so callers
// can inspect what changed after commit.
func (uow *GormUnitOfWork) TrackAggregate(id string, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) session() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
