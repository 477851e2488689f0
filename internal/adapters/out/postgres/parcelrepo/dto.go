// Package parcelrepo provides data transfer objects and mapping functions for
// package persistence: the aggregate row with its denormalized status cache
// and the append-only status log. Log rows are only ever inserted, never
// updated or deleted.
package parcelrepo

import (
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// PackageDTO represents the database row for a package aggregate.
// Status is the write-through cache of the latest log entry, refreshed only
// in the same transaction as the log append.
type PackageDTO struct {
	ID       string `gorm:"type:varchar(32);primaryKey"`
	Status   int    `gorm:"type:int;not null;index"`
	Archived bool   `gorm:"not null;default:false;index"`
}

// TableName overrides GORM's default naming to use "packages".
func (PackageDTO) TableName() string {
	return "packages"
}

// PackageLogDTO represents one append-only status log row.
// The composite index serves the group-wise-maximum resolution queries.
type PackageLogDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	PackageID   string    `gorm:"type:varchar(32);not null;index:idx_package_logs_resolve,priority:1"`
	Status      int       `gorm:"type:int;not null"`
	CreatedAt   time.Time `gorm:"not null;index:idx_package_logs_resolve,priority:2"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	Description string    `gorm:"type:text;not null"`

	// Package pins the log row to an existing package; appending for an
	// unknown package id fails the foreign key.
	Package PackageDTO `gorm:"foreignKey:PackageID"`
}

// TableName overrides GORM's default naming to use "package_status_logs".
func (PackageLogDTO) TableName() string {
	return "package_status_logs"
}

// fromDomain converts a package aggregate to its database representation.
func fromDomain(pkg *parcel.Package) PackageDTO {
	return PackageDTO{
		ID:       pkg.ID().String(),
		Status:   int(pkg.Status()),
		Archived: pkg.IsArchived(),
	}
}

// toDomain converts a database row to a package aggregate.
func toDomain(dto PackageDTO) (*parcel.Package, error) {
	id, err := kernel.PackageIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	return parcel.RestorePackage(id, parcel.Status(dto.Status), dto.Archived)
}

// logFromDomain converts a log entry to its database representation.
// The ID field stays zero for unpersisted entries so the database assigns it.
func logFromDomain(entry parcel.LogEntry) PackageLogDTO {
	return PackageLogDTO{
		ID:          entry.ID(),
		PackageID:   entry.PackageID().String(),
		Status:      int(entry.Status()),
		CreatedAt:   entry.CreatedAt(),
		CreatedBy:   entry.CreatedBy().Bytes(),
		Description: entry.Description(),
	}
}

// logToDomain converts a database row to a log entry.
func logToDomain(dto PackageLogDTO) (parcel.LogEntry, error) {
	packageID, err := kernel.PackageIDFromString(dto.PackageID)
	if err != nil {
		return parcel.LogEntry{}, err
	}

	actorID, err := kernel.ActorIDFromString(dto.CreatedBy.String())
	if err != nil {
		return parcel.LogEntry{}, err
	}

	return parcel.RestoreLogEntry(
		dto.ID, packageID, parcel.Status(dto.Status), actorID, dto.Description, dto.CreatedAt,
	)
}
