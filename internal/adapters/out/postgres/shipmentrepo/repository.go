package shipmentrepo

import (
	"context"
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// NextID reserves a new shipment identifier from the shipments sequence.
func (r *GormShipmentRepository) NextID(ctx context.Context) (kernel.ShipmentID, error) {
	var value int64
	err := r.db.WithContext(ctx).
		Raw("SELECT nextval(pg_get_serial_sequence('shipments', 'id'))").
		Scan(&value).Error
	if err != nil {
		return kernel.ShipmentID{}, err
	}

	return kernel.NewShipmentID(value)
}

// Add saves a new shipment and its member rows to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Update saves an existing shipment to the database, including the per-leg
// status of every member row.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Get retrieves a shipment with its members by id.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.ShipmentID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := r.db.WithContext(ctx).
		Preload("Members").
		First(&dto, "id = ?", id.Value()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByMemberPackage retrieves the shipment containing the given package.
// When the package took part in several legs the most recent one wins.
func (r *GormShipmentRepository) GetByMemberPackage(
	ctx context.Context,
	packageID kernel.PackageID,
) (*shipment.Shipment, error) {
	if err := packageID.Validate(); err != nil {
		return nil, err
	}

	var join ShipmentPackageDTO
	err := r.db.WithContext(ctx).
		Where("package_id = ?", packageID.String()).
		Order("shipment_id DESC").
		First(&join).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipmentByPackage", packageID.String())
		}
		return nil, err
	}

	shipmentID, err := kernel.NewShipmentID(join.ShipmentID)
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, shipmentID)
}

// GormShipmentLogRepository implements ShipmentLogRepository using GORM.
type GormShipmentLogRepository struct {
	db *gorm.DB
}

// NewGormShipmentLogRepository creates a new GORM shipment log repository.
func NewGormShipmentLogRepository(db *gorm.DB) *GormShipmentLogRepository {
	return &GormShipmentLogRepository{db: db}
}

// Append inserts one log row and returns the entry with its assigned id.
// An entry for a shipment id without a shipments row fails the foreign key.
func (r *GormShipmentLogRepository) Append(
	ctx context.Context,
	entry shipment.LogEntry,
) (shipment.LogEntry, error) {
	if err := entry.Validate(); err != nil {
		return shipment.LogEntry{}, err
	}

	dto := logFromDomain(entry)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return shipment.LogEntry{}, err
	}

	return logToDomain(dto)
}

// GetLatest resolves the newest log entry of one shipment: greatest
// created_at, ties broken by the greater id.
func (r *GormShipmentLogRepository) GetLatest(
	ctx context.Context,
	id kernel.ShipmentID,
) (shipment.LogEntry, error) {
	if err := id.Validate(); err != nil {
		return shipment.LogEntry{}, err
	}

	var dto ShipmentLogDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", id.Value()).
		Order("created_at DESC").
		Order("id DESC").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shipment.LogEntry{}, errs.NewObjectNotFoundError("shipmentId", id.String())
	}
	if err != nil {
		return shipment.LogEntry{}, err
	}

	return logToDomain(dto)
}

// GetHistory returns every entry of one shipment, newest first.
func (r *GormShipmentLogRepository) GetHistory(
	ctx context.Context,
	id kernel.ShipmentID,
) ([]shipment.LogEntry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentLogDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", id.Value()).
		Order("created_at DESC").
		Order("id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]shipment.LogEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := logToDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
