package queries

import (
	"context"
	"database/sql"
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/services"
	"freightops/internal/pkg/errs"

	"gorm.io/gorm"
)

// CanAdvanceShipmentQueryHandler runs the reconciler gate read-only: it
// restores the shipment from its rows, resolves member statuses from the
// log and asks the reconciler, without opening a write transaction.
//
// An empty shipment comes back as Allowed: false rather than an error, so
// the UI can simply disable the advance button. An invalid transition edge
// or an unknown shipment is still an error.
type CanAdvanceShipmentQueryHandler struct {
	db         *gorm.DB
	reconciler services.ShipmentReconciler
}

// NewCanAdvanceShipmentQueryHandler creates a handler for read-only
// advance checks.
func NewCanAdvanceShipmentQueryHandler(db *gorm.DB) CanAdvanceShipmentQueryHandler {
	return CanAdvanceShipmentQueryHandler{
		db:         db,
		reconciler: services.NewShipmentReconciler(),
	}
}

// Handle evaluates the gate for the requested advance.
func (h CanAdvanceShipmentQueryHandler) Handle(
	ctx context.Context,
	query CanAdvanceShipmentQuery,
) (CanAdvanceShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CanAdvanceShipmentQueryResponse{}, err
	}

	shp, err := h.loadShipment(ctx, query.ShipmentID())
	if err != nil {
		return CanAdvanceShipmentQueryResponse{}, err
	}

	resolved, err := h.resolveMemberStatuses(ctx, query.ShipmentID())
	if err != nil {
		return CanAdvanceShipmentQueryResponse{}, err
	}

	result, err := h.reconciler.CanAdvance(shp, query.TargetStatus(), resolved)
	if errors.Is(err, shipment.ErrShipmentHasNoPackages) {
		return CanAdvanceShipmentQueryResponse{
			Allowed:            false,
			BlockingPackageIDs: []kernel.PackageID{},
		}, nil
	}
	if err != nil {
		return CanAdvanceShipmentQueryResponse{}, err
	}

	return CanAdvanceShipmentQueryResponse{
		Allowed:            result.Allowed,
		BlockingPackageIDs: result.BlockingPackageIDs,
	}, nil
}

func (h CanAdvanceShipmentQueryHandler) loadShipment(
	ctx context.Context,
	shipmentID kernel.ShipmentID,
) (*shipment.Shipment, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT type, status
		FROM shipments
		WHERE id = ?
	`, shipmentID.Value()).Row()

	var shipmentType, shipmentStatus int
	err := row.Scan(&shipmentType, &shipmentStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("shipmentId", shipmentID.String())
	}
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT package_id, status
		FROM shipment_packages
		WHERE shipment_id = ?
		ORDER BY package_id
	`, shipmentID.Value()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]shipment.Member, 0)
	for rows.Next() {
		var (
			packageID    string
			memberStatus int
		)
		if err = rows.Scan(&packageID, &memberStatus); err != nil {
			return nil, err
		}

		id, idErr := kernel.PackageIDFromString(packageID)
		if idErr != nil {
			return nil, idErr
		}
		member, memberErr := shipment.RestoreMember(id, shipment.MemberStatus(memberStatus))
		if memberErr != nil {
			return nil, memberErr
		}
		members = append(members, member)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		shipmentID, shipment.Type(shipmentType), shipment.Status(shipmentStatus), members,
	)
}

func (h CanAdvanceShipmentQueryHandler) resolveMemberStatuses(
	ctx context.Context,
	shipmentID kernel.ShipmentID,
) (map[kernel.PackageID]parcel.Status, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			sp.package_id,
			l.status
		FROM shipment_packages sp
		JOIN package_status_logs l ON l.package_id = sp.package_id
		WHERE sp.shipment_id = ?
		AND NOT EXISTS (
			SELECT 1
			FROM package_status_logs newer
			WHERE newer.package_id = l.package_id
			AND (
				newer.created_at > l.created_at
				OR (newer.created_at = l.created_at AND newer.id > l.id)
			)
		)
	`, shipmentID.Value()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resolved := make(map[kernel.PackageID]parcel.Status)
	for rows.Next() {
		var (
			packageID string
			status    int
		)

		if err = rows.Scan(&packageID, &status); err != nil {
			return nil, err
		}

		id, idErr := kernel.PackageIDFromString(packageID)
		if idErr != nil {
			return nil, idErr
		}
		resolved[id] = parcel.Status(status)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return resolved, nil
}
