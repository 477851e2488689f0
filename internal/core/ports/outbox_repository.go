package ports

import (
	"context"

	"freightops/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for pending outbox
// events. Events are added in the same transaction as the status-log
// append and removed once published.
type OutboxRepository interface {
	// Add persists pending outbox events.
	Add(ctx context.Context, events []outbox.Event) error

	// GetPending retrieves up to limit unpublished events, oldest first.
	GetPending(ctx context.Context, limit int) ([]outbox.Event, error)

	// MarkPublished marks an event as delivered so it is not dispatched
	// again.
	MarkPublished(ctx context.Context, id int64) error
}

// EventPublisher publishes outbox events to the message broker.
type EventPublisher interface {
	// Publish sends one event, keyed by its aggregate id so events of
	// one entity keep their order.
	Publish(ctx context.Context, event outbox.Event) error
}
