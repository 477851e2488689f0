// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence: the shipment row, the shipment-package join rows
// with their per-leg status cache, and the shipment status log.
package shipmentrepo

import (
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database row for a shipment aggregate.
// Status is the write-through cache of the latest shipment log entry.
type ShipmentDTO struct {
	ID     int64 `gorm:"primaryKey;autoIncrement"`
	Type   int   `gorm:"type:int;not null"`
	Status int   `gorm:"type:int;not null;index"`

	Members []ShipmentPackageDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ShipmentPackageDTO represents one shipment-package join row: the
// participation of a package in one leg, with the per-leg status cache.
type ShipmentPackageDTO struct {
	ShipmentID int64  `gorm:"primaryKey"`
	PackageID  string `gorm:"type:varchar(32);primaryKey;index"`
	Status     int    `gorm:"type:int;not null"`
}

// TableName overrides GORM's default naming to use "shipment_packages".
func (ShipmentPackageDTO) TableName() string {
	return "shipment_packages"
}

// ShipmentLogDTO represents one append-only shipment status log row.
type ShipmentLogDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ShipmentID  int64     `gorm:"not null;index:idx_shipment_logs_resolve,priority:1"`
	Status      int       `gorm:"type:int;not null"`
	CreatedAt   time.Time `gorm:"not null;index:idx_shipment_logs_resolve,priority:2"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	Description string    `gorm:"type:text;not null"`

	// Shipment pins the log row to an existing shipment; appending for an
	// unknown shipment id fails the foreign key.
	Shipment ShipmentDTO `gorm:"foreignKey:ShipmentID"`
}

// TableName overrides GORM's default naming to use "shipment_status_logs".
func (ShipmentLogDTO) TableName() string {
	return "shipment_status_logs"
}

// fromDomain converts a shipment aggregate to its database representation.
func fromDomain(shp *shipment.Shipment) ShipmentDTO {
	members := make([]ShipmentPackageDTO, 0, len(shp.Members()))
	for _, member := range shp.Members() {
		members = append(members, ShipmentPackageDTO{
			ShipmentID: shp.ID().Value(),
			PackageID:  member.PackageID().String(),
			Status:     int(member.Status()),
		})
	}

	return ShipmentDTO{
		ID:      shp.ID().Value(),
		Type:    int(shp.Type()),
		Status:  int(shp.Status()),
		Members: members,
	}
}

// toDomain converts database rows to a shipment aggregate.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.NewShipmentID(dto.ID)
	if err != nil {
		return nil, err
	}

	members := make([]shipment.Member, 0, len(dto.Members))
	for _, memberDTO := range dto.Members {
		packageID, pkgErr := kernel.PackageIDFromString(memberDTO.PackageID)
		if pkgErr != nil {
			return nil, pkgErr
		}

		member, memberErr := shipment.RestoreMember(
			packageID, shipment.MemberStatus(memberDTO.Status),
		)
		if memberErr != nil {
			return nil, memberErr
		}
		members = append(members, member)
	}

	return shipment.RestoreShipment(
		id, shipment.Type(dto.Type), shipment.Status(dto.Status), members,
	)
}

// logFromDomain converts a shipment log entry to its database representation.
func logFromDomain(entry shipment.LogEntry) ShipmentLogDTO {
	return ShipmentLogDTO{
		ID:          entry.ID(),
		ShipmentID:  entry.ShipmentID().Value(),
		Status:      int(entry.Status()),
		CreatedAt:   entry.CreatedAt(),
		CreatedBy:   entry.CreatedBy().Bytes(),
		Description: entry.Description(),
	}
}

// logToDomain converts a database row to a shipment log entry.
func logToDomain(dto ShipmentLogDTO) (shipment.LogEntry, error) {
	shipmentID, err := kernel.NewShipmentID(dto.ShipmentID)
	if err != nil {
		return shipment.LogEntry{}, err
	}

	actorID, err := kernel.ActorIDFromString(dto.CreatedBy.String())
	if err != nil {
		return shipment.LogEntry{}, err
	}

	return shipment.RestoreLogEntry(
		dto.ID, shipmentID, shipment.Status(dto.Status), actorID, dto.Description, dto.CreatedAt,
	)
}
