package queries

import (
	"context"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetPackageHistoryQueryHandler reads a package's whole status log,
// newest first. An unknown package id is an ObjectNotFound error.
type GetPackageHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetPackageHistoryQueryHandler creates a handler for history lookups.
func NewGetPackageHistoryQueryHandler(db *gorm.DB) GetPackageHistoryQueryHandler {
	return GetPackageHistoryQueryHandler{db: db}
}

// Handle reads the full history of the package.
func (h GetPackageHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetPackageHistoryQuery,
) ([]GetPackageHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			description,
			created_at,
			created_by
		FROM package_status_logs
		WHERE package_id = ?
		ORDER BY created_at DESC, id DESC
	`, query.PackageID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetPackageHistoryQueryResponse, 0)
	for rows.Next() {
		var (
			status      int
			description string
			createdAt   time.Time
			createdBy   string
		)

		if err = rows.Scan(&status, &description, &createdAt, &createdBy); err != nil {
			return nil, err
		}

		actorID, actorErr := kernel.ActorIDFromString(createdBy)
		if actorErr != nil {
			return nil, actorErr
		}

		entries = append(entries, GetPackageHistoryQueryResponse{
			Status:      parcel.Status(status),
			Description: description,
			CreatedAt:   createdAt,
			CreatedBy:   actorID,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, errs.NewObjectNotFoundError("packageId", query.PackageID().String())
	}

	return entries, nil
}
