package queries

import (
	"errors"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/guard"
)

var ErrGetShipmentPackageStatusesQueryIsNotConstructed = errors.New(
	"GetShipmentPackageStatusesQuery must be created via NewGetShipmentPackageStatusesQuery constructor",
)

// GetShipmentPackageStatusesQuery resolves the current status of every
// member package of one shipment. Scan screens call this to render the
// per-package state before and after each scan batch.
type GetShipmentPackageStatusesQuery struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ShipmentID

	guard guard.ConstructorGuard
}

// NewGetShipmentPackageStatusesQuery creates a query for a shipment's
// member statuses.
func NewGetShipmentPackageStatusesQuery(
	shipmentID kernel.ShipmentID,
) (GetShipmentPackageStatusesQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentPackageStatusesQuery{}, err
	}

	return GetShipmentPackageStatusesQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentPackageStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentPackageStatusesQueryIsNotConstructed)
}

// ShipmentID returns the shipment whose members are resolved.
func (q GetShipmentPackageStatusesQuery) ShipmentID() kernel.ShipmentID {
	return q.shipmentID
}

// GetShipmentPackageStatusesQueryResponse is one member package's resolved
// state: the global package status from the log plus the per-leg member
// status from the join row.
type GetShipmentPackageStatusesQueryResponse struct {
	PackageID    kernel.PackageID
	Status       parcel.Status
	MemberStatus shipment.MemberStatus
	UpdatedAt    time.Time
}
