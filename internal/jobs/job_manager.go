package jobs

import (
	"fmt"
	"log/slog"

	"freightops/internal/core/ports"

	"gorm.io/gorm"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxDispatchJob *OutboxDispatchJob
	cacheAuditJob     *CacheAuditJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
	db *gorm.DB,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxDispatchJob: NewOutboxDispatchJob(outbox, publisher, logger),
		cacheAuditJob:     NewCacheAuditJob(db, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox dispatch job: %w", err)
	}

	if err := jm.cacheAuditJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxDispatchJob.Stop()
		return fmt.Errorf("failed to start cache audit job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.cacheAuditJob.Stop()
	jm.outboxDispatchJob.Stop()
}
