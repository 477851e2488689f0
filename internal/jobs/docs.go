// Package jobs provides scheduled background tasks for the freight
// tracking system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the tracking service.
//
// # Available Jobs
//
// 1. OutboxDispatchJob - Runs every second to drain committed outbox events to Kafka
// 2. CacheAuditJob - Runs hourly to verify the package status cache against the status log
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(outboxRepo, publisher, db, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The dispatch job stops at the first publish failure so later events of
//   the same aggregate cannot overtake a failed one; the batch is retried on
//   the next tick.
// - The audit job treats the status log as the source of truth and reports
//   every diverged cache row; divergence indicates a bug, not data to fix.
// - Failed job starts will stop any already running jobs.
package jobs
