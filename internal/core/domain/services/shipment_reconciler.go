package services

import (
	"fmt"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"
)

// ReconcileResult is the outcome of a shipment advance gate check.
// When the advance is blocked, BlockingPackageIDs names exactly the member
// packages whose resolved status is not yet where the leg requires it, so
// the operator sees which scans remain outstanding.
type ReconcileResult struct {
	Allowed            bool
	BlockingPackageIDs []kernel.PackageID
}

// ShipmentReconciler gates shipment-level status changes on the resolved
// statuses of all member packages.
//
// Business rules:
//   - A shipment may go IN_TRANSIT only when every member's resolved package
//     status equals the pre-transit status for the shipment's type
//   - A shipment may reach its terminal status only when every member's
//     resolved status equals the leg-completed status for its type
//   - A shipment with no members is always rejected, never vacuously allowed
//   - The requested target must be a legal edge of the shipment status graph
//     and, for terminal targets, the terminal status matching the leg type
//
// Nothing else in the system may advance a shipment's status without
// consulting this gate.
type ShipmentReconciler struct{}

// NewShipmentReconciler creates a new ShipmentReconciler instance.
func NewShipmentReconciler() ShipmentReconciler {
	return ShipmentReconciler{}
}

// CanAdvance reports whether the shipment may advance to target given the
// resolved statuses of its member packages.
//
// Returns an error for structurally invalid requests (empty shipment,
// illegal transition edge, wrong terminal for the leg type, member without
// a resolved status); a blocked-but-valid request comes back as
// (ReconcileResult{Allowed: false, BlockingPackageIDs: ...}, nil).
func (r ShipmentReconciler) CanAdvance(
	shp *shipment.Shipment,
	target shipment.Status,
	resolved map[kernel.PackageID]parcel.Status,
) (ReconcileResult, error) {
	if err := shp.Validate(); err != nil {
		return ReconcileResult{}, err
	}

	members := shp.Members()
	if len(members) == 0 {
		return ReconcileResult{}, shipment.ErrShipmentHasNoPackages
	}

	if !shp.Status().CanTransitionTo(target) {
		return ReconcileResult{}, errs.NewValueIsInvalidErrorWithCause(
			"shipment status transition is invalid",
			fmt.Errorf("cannot move from %s to %s", shp.Status(), target),
		)
	}

	required, err := r.requiredMemberStatus(shp.Type(), target)
	if err != nil {
		return ReconcileResult{}, err
	}

	blocking := make([]kernel.PackageID, 0)
	for _, member := range members {
		status, ok := resolved[member.PackageID()]
		if !ok {
			return ReconcileResult{}, errs.NewObjectNotFoundErrorWithCause(
				"packageId", member.PackageID().String(), ErrResolvedStatusMissing,
			)
		}

		if status != required {
			blocking = append(blocking, member.PackageID())
		}
	}

	return ReconcileResult{
		Allowed:            len(blocking) == 0,
		BlockingPackageIDs: blocking,
	}, nil
}

// requiredMemberStatus maps the requested shipment status to the package
// status every member must have reached.
func (r ShipmentReconciler) requiredMemberStatus(
	shipmentType shipment.Type,
	target shipment.Status,
) (parcel.Status, error) {
	switch {
	case target == shipment.InTransit:
		return shipmentType.PreTransitPackageStatus(), nil
	case target.IsTerminal():
		if target != shipmentType.TerminalStatus() {
			return parcel.Unknown, errs.NewValueIsInvalidErrorWithCause(
				"shipment target status is invalid",
				fmt.Errorf("%s legs end in %s, not %s", shipmentType, shipmentType.TerminalStatus(), target),
			)
		}
		return shipmentType.LegCompletedPackageStatus(), nil
	default:
		return parcel.Unknown, errs.NewValueIsInvalidError("shipment target status is invalid")
	}
}
