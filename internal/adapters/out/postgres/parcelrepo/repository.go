package parcelrepo

import (
	"context"
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPackageRepository implements PackageRepository using GORM.
type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormPackageRepository creates a new GORM package repository.
func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new package to the database.
func (r *GormPackageRepository) Add(ctx context.Context, aggregate *parcel.Package) error {
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

// Update saves an existing package to the database.
func (r *GormPackageRepository) Update(ctx context.Context, aggregate *parcel.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "archived").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Get retrieves a package by its tracking id.
func (r *GormPackageRepository) Get(ctx context.Context, id kernel.PackageID) (*parcel.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIDs retrieves the packages with the given tracking ids. Unknown ids
// are simply absent from the result.
func (r *GormPackageRepository) GetByIDs(
	ctx context.Context,
	ids []kernel.PackageID,
) ([]*parcel.Package, error) {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.String())
	}

	var dtos []PackageDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	packages := make([]*parcel.Package, 0, len(dtos))
	for _, dto := range dtos {
		pkg, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}

	return packages, nil
}

// GormPackageLogRepository implements PackageLogRepository using GORM.
type GormPackageLogRepository struct {
	db *gorm.DB
}

// NewGormPackageLogRepository creates a new GORM package log repository.
func NewGormPackageLogRepository(db *gorm.DB) *GormPackageLogRepository {
	return &GormPackageLogRepository{db: db}
}

// Append inserts one log row and returns the entry with its assigned id.
// An entry for a package id without a packages row fails the foreign key.
func (r *GormPackageLogRepository) Append(
	ctx context.Context,
	entry parcel.LogEntry,
) (parcel.LogEntry, error) {
	if err := entry.Validate(); err != nil {
		return parcel.LogEntry{}, err
	}

	dto := logFromDomain(entry)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return parcel.LogEntry{}, err
	}

	return logToDomain(dto)
}

// AppendMany inserts a batch of log rows in one statement and returns the
// entries with their assigned ids, in input order. Within a transaction the
// batch is all-or-nothing.
func (r *GormPackageLogRepository) AppendMany(
	ctx context.Context,
	entries []parcel.LogEntry,
) ([]parcel.LogEntry, error) {
	if len(entries) == 0 {
		return []parcel.LogEntry{}, nil
	}

	dtos := make([]PackageLogDTO, 0, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		dtos = append(dtos, logFromDomain(entry))
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dtos).Error; err != nil {
		return nil, err
	}

	appended := make([]parcel.LogEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := logToDomain(dto)
		if err != nil {
			return nil, err
		}
		appended = append(appended, entry)
	}

	return appended, nil
}

// GetLatest resolves the newest log entry of one package: greatest
// created_at, ties broken by the greater id.
func (r *GormPackageLogRepository) GetLatest(
	ctx context.Context,
	id kernel.PackageID,
) (parcel.LogEntry, error) {
	if err := id.Validate(); err != nil {
		return parcel.LogEntry{}, err
	}

	var dto PackageLogDTO
	err := r.db.WithContext(ctx).
		Where("package_id = ?", id.String()).
		Order("created_at DESC").
		Order("id DESC").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return parcel.LogEntry{}, errs.NewObjectNotFoundError("packageId", id.String())
	}
	if err != nil {
		return parcel.LogEntry{}, err
	}

	return logToDomain(dto)
}

// GetLatestBatch resolves the newest entry per package with a single
// group-wise-maximum query: a row survives only if no newer row exists for
// the same package, newer meaning greater created_at or equal created_at
// with a greater id. Packages without entries are absent from the result.
func (r *GormPackageLogRepository) GetLatestBatch(
	ctx context.Context,
	ids []kernel.PackageID,
) (map[kernel.PackageID]parcel.LogEntry, error) {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.String())
	}

	latest := make(map[kernel.PackageID]parcel.LogEntry, len(ids))
	if len(raw) == 0 {
		return latest, nil
	}

	var dtos []PackageLogDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, package_id, status, created_at, created_by, description
		FROM package_status_logs l
		WHERE l.package_id IN ?
		AND NOT EXISTS (
			SELECT 1
			FROM package_status_logs newer
			WHERE newer.package_id = l.package_id
			AND (
				newer.created_at > l.created_at
				OR (newer.created_at = l.created_at AND newer.id > l.id)
			)
		)
	`, raw).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		entry, entryErr := logToDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		latest[entry.PackageID()] = entry
	}

	return latest, nil
}

// GetHistory returns every entry of one package, newest first.
func (r *GormPackageLogRepository) GetHistory(
	ctx context.Context,
	id kernel.PackageID,
) ([]parcel.LogEntry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dtos []PackageLogDTO
	err := r.db.WithContext(ctx).
		Where("package_id = ?", id.String()).
		Order("created_at DESC").
		Order("id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]parcel.LogEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := logToDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
