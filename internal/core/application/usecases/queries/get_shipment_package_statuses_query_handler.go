package queries

import (
	"context"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// GetShipmentPackageStatusesQueryHandler resolves every member package of a
// shipment with one grouped query. The NOT EXISTS self-join implements the
// group-wise maximum: a log row survives only if no newer row exists for the
// same package, where newer means greater created_at or the same created_at
// with a greater id. One query per call regardless of shipment size.
type GetShipmentPackageStatusesQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentPackageStatusesQueryHandler creates a handler for
// per-shipment status resolution.
func NewGetShipmentPackageStatusesQueryHandler(db *gorm.DB) GetShipmentPackageStatusesQueryHandler {
	return GetShipmentPackageStatusesQueryHandler{db: db}
}

// Handle resolves all member statuses of the shipment. A shipment with no
// members yields an empty slice, not an error; callers that need to gate on
// emptiness do so explicitly.
func (h GetShipmentPackageStatusesQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentPackageStatusesQuery,
) ([]GetShipmentPackageStatusesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetShipmentPackageStatusesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			sp.package_id,
			l.status,
			sp.status,
			l.created_at
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
		ORDER BY sp.package_id
	`, query.ShipmentID().Value()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			packageID    string
			status       int
			memberStatus int
			createdAt    time.Time
		)

		if err = rows.Scan(&packageID, &status, &memberStatus, &createdAt); err != nil {
			return nil, err
		}

		id, idErr := kernel.PackageIDFromString(packageID)
		if idErr != nil {
			return nil, idErr
		}

		responses = append(responses, GetShipmentPackageStatusesQueryResponse{
			PackageID:    id,
			Status:       parcel.Status(status),
			MemberStatus: shipment.MemberStatus(memberStatus),
			UpdatedAt:    createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
