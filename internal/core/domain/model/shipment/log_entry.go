package shipment

import (
	"errors"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
)

var (
	// ErrShipmentLogEntryIsNotConstructed is returned when a LogEntry was not
	// created through NewLogEntry or RestoreLogEntry.
	ErrShipmentLogEntryIsNotConstructed = errors.New(
		"shipment LogEntry must be created via NewLogEntry or RestoreLogEntry",
	)

	// ErrNoShipmentLogEntries is returned when resolving the latest entry of
	// an empty shipment log. Shipments get their first entry at creation, so
	// an empty log indicates a broken invariant.
	ErrNoShipmentLogEntries = errors.New("shipment has no status log entries")
)

// LogEntry is one immutable row of a shipment's append-only status log.
// Same resolution rule as the package log: latest CreatedAt wins, ties
// fall back to the higher row id.
type LogEntry struct {
	id int64

	shipmentID  kernel.ShipmentID
	status      Status
	createdAt   time.Time
	createdBy   kernel.ActorID
	description string

	isConstructed bool
}

// NewLogEntry creates an unpersisted shipment log entry for appending.
// An empty description falls back to the status's default rationale.
func NewLogEntry(
	shipmentID kernel.ShipmentID,
	status Status,
	createdBy kernel.ActorID,
	description string,
	createdAt time.Time,
) (LogEntry, error) {
	if err := errors.Join(
		shipmentID.Validate(),
		status.Validate(),
		createdBy.Validate(),
	); err != nil {
		return LogEntry{}, err
	}

	if createdAt.IsZero() {
		return LogEntry{}, errs.NewValueIsRequiredError("createdAt")
	}

	if description == "" {
		description = status.Description()
	}

	return LogEntry{
		shipmentID:    shipmentID,
		status:        status,
		createdAt:     createdAt,
		createdBy:     createdBy,
		description:   description,
		isConstructed: true,
	}, nil
}

// RestoreLogEntry reconstructs a persisted shipment log entry.
func RestoreLogEntry(
	id int64,
	shipmentID kernel.ShipmentID,
	status Status,
	createdBy kernel.ActorID,
	description string,
	createdAt time.Time,
) (LogEntry, error) {
	entry, err := NewLogEntry(shipmentID, status, createdBy, description, createdAt)
	if err != nil {
		return LogEntry{}, err
	}

	entry.id = id
	return entry, nil
}

// Validate ensures the entry was created through a constructor.
func (e LogEntry) Validate() error {
	if !e.isConstructed {
		return ErrShipmentLogEntryIsNotConstructed
	}
	return nil
}

// ID returns the storage-assigned row id, zero for unpersisted entries.
func (e LogEntry) ID() int64 {
	return e.id
}

// ShipmentID returns the shipment number the entry belongs to.
func (e LogEntry) ShipmentID() kernel.ShipmentID {
	return e.shipmentID
}

// Status returns the status recorded by the entry.
func (e LogEntry) Status() Status {
	return e.status
}

// CreatedAt returns the entry's ordering key.
func (e LogEntry) CreatedAt() time.Time {
	return e.createdAt
}

// CreatedBy returns the actor attributed with the status change.
func (e LogEntry) CreatedBy() kernel.ActorID {
	return e.createdBy
}

// Description returns the operator-facing rationale.
func (e LogEntry) Description() string {
	return e.description
}

// IsNewerThan reports whether e supersedes other under the resolution
// rule shared with the package log.
func (e LogEntry) IsNewerThan(other LogEntry) bool {
	if e.createdAt.After(other.createdAt) {
		return true
	}
	if e.createdAt.Equal(other.createdAt) {
		return e.id > other.id
	}
	return false
}

// LatestOf reduces a shipment's log entries to the one defining its
// current status. Returns ErrNoShipmentLogEntries for an empty slice.
func LatestOf(entries []LogEntry) (LogEntry, error) {
	if len(entries) == 0 {
		return LogEntry{}, ErrNoShipmentLogEntries
	}

	latest := entries[0]
	for _, entry := range entries[1:] {
		if entry.IsNewerThan(latest) {
			latest = entry
		}
	}
	return latest, nil
}
