package jobs

import (
	"context"
	"log/slog"

	"freightops/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// outboxBatchSize limits how many pending events one tick drains.
const outboxBatchSize = 100

// OutboxDispatchJob drains pending outbox events to the message broker.
// Runs every second so committed status changes reach consumers promptly.
type OutboxDispatchJob struct {
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxDispatchJob creates a job that publishes pending outbox events.
func NewOutboxDispatchJob(
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *OutboxDispatchJob {
	return &OutboxDispatchJob{
		outbox:    outbox,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_dispatch_job"),
	}
}

// Start begins the dispatch job to run every second.
func (j *OutboxDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.dispatch(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox dispatch failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job started (running every second)")
	return nil
}

// Stop stops the dispatch job.
func (j *OutboxDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job stopped")
}

// dispatch publishes pending events oldest first. It stops at the first
// publish failure instead of skipping ahead, otherwise a later event of the
// same aggregate could overtake the failed one.
func (j *OutboxDispatchJob) dispatch(ctx context.Context) error {
	events, err := j.outbox.GetPending(ctx, outboxBatchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err := j.publisher.Publish(ctx, event); err != nil {
			return err
		}

		if err := j.outbox.MarkPublished(ctx, event.ID()); err != nil {
			return err
		}
	}

	return nil
}
