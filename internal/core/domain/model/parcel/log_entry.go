package parcel

import (
	"errors"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
)

var (
	// ErrLogEntryIsNotConstructed is returned when a LogEntry was not created
	// through NewLogEntry or RestoreLogEntry.
	ErrLogEntryIsNotConstructed = errors.New("LogEntry must be created via NewLogEntry or RestoreLogEntry")

	// ErrNoLogEntries is returned when resolving the latest entry of an empty
	// log. Every tracked package gets its first entry at intake, so an empty
	// log indicates a broken invariant, not an expected state.
	ErrNoLogEntries = errors.New("package has no status log entries")
)

// LogEntry is one immutable row of a package's append-only status log.
//
// Entries are never updated or deleted; corrections happen by appending a
// newer entry. The current status of a package is the status of its entry
// with the maximum CreatedAt, ties broken by the higher entry id
// (insertion order).
type LogEntry struct {
	// id is the storage-assigned log row id; zero until persisted.
	id int64

	packageID   kernel.PackageID
	status      Status
	createdAt   time.Time
	createdBy   kernel.ActorID
	description string

	isConstructed bool
}

// NewLogEntry creates an unpersisted log entry for appending.
// An empty description falls back to the status's default rationale.
func NewLogEntry(
	packageID kernel.PackageID,
	status Status,
	createdBy kernel.ActorID,
	description string,
	createdAt time.Time,
) (LogEntry, error) {
	if err := errors.Join(
		packageID.Validate(),
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
		packageID:     packageID,
		status:        status,
		createdAt:     createdAt,
		createdBy:     createdBy,
		description:   description,
		isConstructed: true,
	}, nil
}

// RestoreLogEntry reconstructs a persisted log entry, including its row id.
func RestoreLogEntry(
	id int64,
	packageID kernel.PackageID,
	status Status,
	createdBy kernel.ActorID,
	description string,
	createdAt time.Time,
) (LogEntry, error) {
	entry, err := NewLogEntry(packageID, status, createdBy, description, createdAt)
	if err != nil {
		return LogEntry{}, err
	}

	entry.id = id
	return entry, nil
}

// Validate ensures the entry was created through a constructor.
func (e LogEntry) Validate() error {
	if !e.isConstructed {
		return ErrLogEntryIsNotConstructed
	}
	return nil
}

// ID returns the storage-assigned row id, zero for unpersisted entries.
func (e LogEntry) ID() int64 {
	return e.id
}

// PackageID returns the tracking id the entry belongs to.
func (e LogEntry) PackageID() kernel.PackageID {
	return e.packageID
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
// rule: later CreatedAt wins, identical timestamps fall back to the
// higher row id so same-millisecond double writes resolve in insertion
// order.
func (e LogEntry) IsNewerThan(other LogEntry) bool {
	if e.createdAt.After(other.createdAt) {
		return true
	}
	if e.createdAt.Equal(other.createdAt) {
		return e.id > other.id
	}
	return false
}

// LatestOf reduces a package's log entries to the one defining its current
// status. Returns ErrNoLogEntries for an empty slice.
func LatestOf(entries []LogEntry) (LogEntry, error) {
	if len(entries) == 0 {
		return LogEntry{}, ErrNoLogEntries
	}

	latest := entries[0]
	for _, entry := range entries[1:] {
		if entry.IsNewerThan(latest) {
			latest = entry
		}
	}
	return latest, nil
}
