package queries

import (
	"errors"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/pkg/guard"
)

var ErrGetPackageHistoryQueryIsNotConstructed = errors.New(
	"GetPackageHistoryQuery must be created via NewGetPackageHistoryQuery constructor",
)

// GetPackageHistoryQuery retrieves the full status history of one package,
// newest entry first.
type GetPackageHistoryQuery struct { //nolint:recvcheck //using for validation
	packageID kernel.PackageID

	guard guard.ConstructorGuard
}

// NewGetPackageHistoryQuery creates a query for a package's status history.
func NewGetPackageHistoryQuery(packageID kernel.PackageID) (GetPackageHistoryQuery, error) {
	if err := packageID.Validate(); err != nil {
		return GetPackageHistoryQuery{}, err
	}

	return GetPackageHistoryQuery{
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPackageHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetPackageHistoryQueryIsNotConstructed)
}

// PackageID returns the package whose history is requested.
func (q GetPackageHistoryQuery) PackageID() kernel.PackageID {
	return q.packageID
}

// GetPackageHistoryQueryResponse is one historical status log entry.
type GetPackageHistoryQueryResponse struct {
	Status      parcel.Status
	Description string
	CreatedAt   time.Time
	CreatedBy   kernel.ActorID
}
