package queries

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/guard"
)

var ErrCanAdvanceShipmentQueryIsNotConstructed = errors.New(
	"CanAdvanceShipmentQuery must be created via NewCanAdvanceShipmentQuery constructor",
)

// CanAdvanceShipmentQuery asks, without writing anything, whether a
// shipment could advance to the target status right now. The UI uses it to
// enable or disable the advance button and to highlight outstanding scans.
type CanAdvanceShipmentQuery struct { //nolint:recvcheck //using for validation
	shipmentID   kernel.ShipmentID
	targetStatus shipment.Status

	guard guard.ConstructorGuard
}

// NewCanAdvanceShipmentQuery creates a read-only advance check.
func NewCanAdvanceShipmentQuery(
	shipmentID kernel.ShipmentID,
	targetStatus shipment.Status,
) (CanAdvanceShipmentQuery, error) {
	if err := errors.Join(shipmentID.Validate(), targetStatus.Validate()); err != nil {
		return CanAdvanceShipmentQuery{}, err
	}

	return CanAdvanceShipmentQuery{
		shipmentID:   shipmentID,
		targetStatus: targetStatus,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CanAdvanceShipmentQuery) Validate() error {
	return q.guard.Validate(ErrCanAdvanceShipmentQueryIsNotConstructed)
}

// ShipmentID returns the shipment being checked.
func (q CanAdvanceShipmentQuery) ShipmentID() kernel.ShipmentID {
	return q.shipmentID
}

// TargetStatus returns the status the caller wants to advance to.
func (q CanAdvanceShipmentQuery) TargetStatus() shipment.Status {
	return q.targetStatus
}

// CanAdvanceShipmentQueryResponse is the gate verdict. When Allowed is
// false, BlockingPackageIDs names exactly the packages whose scans remain
// outstanding.
type CanAdvanceShipmentQueryResponse struct {
	Allowed            bool
	BlockingPackageIDs []kernel.PackageID
}
