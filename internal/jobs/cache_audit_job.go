package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CacheAuditJob periodically verifies the package status cache against the
// status log. The cache column on packages is written only in the same
// transaction as the log append, so any divergence indicates a bug; the job
// detects and reports it rather than papering over it with a silent repair.
type CacheAuditJob struct {
	db     *gorm.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// driftRow is one package whose cached status disagrees with its log.
type driftRow struct {
	ID           string
	CachedStatus int
	LatestStatus int
}

// NewCacheAuditJob creates a job that audits the package status cache.
func NewCacheAuditJob(db *gorm.DB, logger *slog.Logger) *CacheAuditJob {
	return &CacheAuditJob{
		db:     db,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "cache_audit_job"),
	}
}

// Start begins the audit job to run at the top of every hour.
func (j *CacheAuditJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()
		if err := j.audit(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Cache audit failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cache audit job started (running hourly)")
	return nil
}

// Stop stops the audit job.
func (j *CacheAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cache audit job stopped")
}

// audit reports packages whose cached status disagrees with the resolved
// latest log entry.
func (j *CacheAuditJob) audit(ctx context.Context) error {
	var drifted []driftRow
	err := j.db.WithContext(ctx).Raw(`
		SELECT p.id, p.status AS cached_status, l.status AS latest_status
		FROM packages p
		JOIN package_status_logs l ON l.package_id = p.id
		AND NOT EXISTS (
			SELECT 1
			FROM package_status_logs newer
			WHERE newer.package_id = l.package_id
			AND (
				newer.created_at > l.created_at
				OR (newer.created_at = l.created_at AND newer.id > l.id)
			)
		)
		WHERE p.status <> l.status
	`).Scan(&drifted).Error
	if err != nil {
		return err
	}

	for _, row := range drifted {
		j.logger.WarnContext(ctx, "Status cache diverged from log",
			"packageId", row.ID,
			"cachedStatus", row.CachedStatus,
			"latestStatus", row.LatestStatus)
	}

	if len(drifted) == 0 {
		j.logger.InfoContext(ctx, "Status cache audit passed")
	}

	return nil
}
