package ports

import (
	"context"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
)

// PackageRepository defines the persistence contract for package aggregates.
// The aggregate row carries a denormalized copy of the latest status; the
// status log remains the source of truth.
type PackageRepository interface {
	// Add persists a new package aggregate to storage.
	// The package must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *parcel.Package) error

	// Update persists changes to an existing package aggregate.
	Update(ctx context.Context, aggregate *parcel.Package) error

	// Get retrieves a package aggregate by its identifier.
	Get(ctx context.Context, id kernel.PackageID) (*parcel.Package, error)

	// GetByIDs retrieves the packages with the given identifiers.
	// Identifiers with no matching row are absent from the result,
	// not an error.
	GetByIDs(ctx context.Context, ids []kernel.PackageID) ([]*parcel.Package, error)
}

// PackageLogRepository defines the persistence contract for the append-only
// package status log. Entries are never updated or deleted.
type PackageLogRepository interface {
	// Append inserts one log entry and returns it with the
	// storage-assigned id.
	Append(ctx context.Context, entry parcel.LogEntry) (parcel.LogEntry, error)

	// AppendMany inserts a batch of log entries in one statement and
	// returns them with storage-assigned ids, in input order. The batch
	// is atomic within the surrounding transaction.
	AppendMany(ctx context.Context, entries []parcel.LogEntry) ([]parcel.LogEntry, error)

	// GetLatest resolves the current status entry of one package:
	// the entry with the greatest createdAt, ties broken by the
	// greatest id. Returns errs.ObjectNotFoundError when the package
	// has no entries.
	GetLatest(ctx context.Context, id kernel.PackageID) (parcel.LogEntry, error)

	// GetLatestBatch resolves the current status entries for a set of
	// packages with a single grouped query. Packages with no entries
	// are absent from the result map.
	GetLatestBatch(ctx context.Context, ids []kernel.PackageID) (map[kernel.PackageID]parcel.LogEntry, error)

	// GetHistory returns every entry of one package ordered from newest
	// to oldest.
	GetHistory(ctx context.Context, id kernel.PackageID) ([]parcel.LogEntry, error)
}
