package ports

import (
	"context"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment
// aggregates and their member join rows.
type ShipmentRepository interface {
	// NextID reserves a new shipment identifier from storage.
	NextID(ctx context.Context) (kernel.ShipmentID, error)

	// Add persists a new shipment aggregate together with its member rows.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate,
	// including member status changes.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate with its members.
	Get(ctx context.Context, id kernel.ShipmentID) (*shipment.Shipment, error)

	// GetByMemberPackage retrieves the shipment containing the given
	// package, if any.
	GetByMemberPackage(ctx context.Context, packageID kernel.PackageID) (*shipment.Shipment, error)
}

// ShipmentLogRepository defines the persistence contract for the append-only
// shipment status log.
type ShipmentLogRepository interface {
	// Append inserts one log entry and returns it with the
	// storage-assigned id.
	Append(ctx context.Context, entry shipment.LogEntry) (shipment.LogEntry, error)

	// GetLatest resolves the current status entry of one shipment:
	// greatest createdAt, ties broken by greatest id. Returns
	// errs.ObjectNotFoundError when the shipment has no entries.
	GetLatest(ctx context.Context, id kernel.ShipmentID) (shipment.LogEntry, error)

	// GetHistory returns every entry of one shipment ordered from newest
	// to oldest.
	GetHistory(ctx context.Context, id kernel.ShipmentID) ([]shipment.LogEntry, error)
}
