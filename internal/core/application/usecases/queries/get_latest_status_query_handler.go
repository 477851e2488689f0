package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetLatestStatusQueryHandler resolves one package's current status from
// the status log. A package with no log entries is an ObjectNotFound error:
// registration always writes the first entry, so an empty log means the
// package id itself is unknown.
type GetLatestStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetLatestStatusQueryHandler creates a handler for latest-status lookups.
func NewGetLatestStatusQueryHandler(db *gorm.DB) GetLatestStatusQueryHandler {
	return GetLatestStatusQueryHandler{db: db}
}

// Handle resolves the newest log entry for the package: greatest created_at,
// ties broken by the greater log id.
func (h GetLatestStatusQueryHandler) Handle(
	ctx context.Context,
	query GetLatestStatusQuery,
) (GetLatestStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLatestStatusQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			description,
			created_at,
			created_by
		FROM package_status_logs
		WHERE package_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, query.PackageID().String()).Row()

	var (
		status      int
		description string
		createdAt   time.Time
		createdBy   string
	)

	err := row.Scan(&status, &description, &createdAt, &createdBy)
	if errors.Is(err, sql.ErrNoRows) {
		return GetLatestStatusQueryResponse{}, errs.NewObjectNotFoundError(
			"packageId", query.PackageID().String(),
		)
	}
	if err != nil {
		return GetLatestStatusQueryResponse{}, err
	}

	actorID, err := kernel.ActorIDFromString(createdBy)
	if err != nil {
		return GetLatestStatusQueryResponse{}, err
	}

	return GetLatestStatusQueryResponse{
		PackageID:   query.PackageID(),
		Status:      parcel.Status(status),
		Description: description,
		UpdatedAt:   createdAt,
		UpdatedBy:   actorID,
	}, nil
}
