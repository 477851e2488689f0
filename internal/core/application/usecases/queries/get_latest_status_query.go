// Package queries contains read-only operations in the CQRS architecture.
// Query handlers go straight to the database with raw SQL and return plain
// response structs; they never load full aggregates or open transactions.
//
// Current status is always resolved from the append-only status logs, not
// from the denormalized caches, so a stale cache can never leak into a
// read path. The logs are resolved with the group-wise-maximum pattern:
// greatest created_at per entity, ties broken by the greater log id.
package queries

import (
	"errors"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/pkg/guard"
)

var ErrGetLatestStatusQueryIsNotConstructed = errors.New(
	"GetLatestStatusQuery must be created via NewGetLatestStatusQuery constructor",
)

// GetLatestStatusQuery resolves the current status of one package.
type GetLatestStatusQuery struct { //nolint:recvcheck //using for validation
	packageID kernel.PackageID

	guard guard.ConstructorGuard
}

// NewGetLatestStatusQuery creates a query for a package's current status.
func NewGetLatestStatusQuery(packageID kernel.PackageID) (GetLatestStatusQuery, error) {
	if err := packageID.Validate(); err != nil {
		return GetLatestStatusQuery{}, err
	}

	return GetLatestStatusQuery{
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLatestStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetLatestStatusQueryIsNotConstructed)
}

// PackageID returns the package to resolve.
func (q GetLatestStatusQuery) PackageID() kernel.PackageID {
	return q.packageID
}

// GetLatestStatusQueryResponse is the resolved current status of a package.
type GetLatestStatusQueryResponse struct {
	PackageID   kernel.PackageID
	Status      parcel.Status
	Description string
	UpdatedAt   time.Time
	UpdatedBy   kernel.ActorID
}
