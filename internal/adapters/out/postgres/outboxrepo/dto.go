// Package outboxrepo persists pending domain events alongside the status
// logs they describe, so publishing to the broker can happen after commit
// without losing events.
package outboxrepo

import (
	"time"

	"freightops/internal/core/domain/model/outbox"
)

// OutboxEventDTO represents one pending or published outbox row.
type OutboxEventDTO struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	AggregateType string `gorm:"type:varchar(32);not null"`
	AggregateID   string `gorm:"type:varchar(64);not null"`
	EventType     string `gorm:"type:varchar(64);not null"`
	Payload       []byte `gorm:"type:jsonb;not null"`
	CreatedAt     time.Time
	PublishedAt   *time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "outbox_events".
func (OutboxEventDTO) TableName() string {
	return "outbox_events"
}

// fromDomain converts an outbox event to its database representation.
func fromDomain(event outbox.Event) OutboxEventDTO {
	return OutboxEventDTO{
		ID:            event.ID(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		EventType:     event.EventType(),
		Payload:       event.Payload(),
		CreatedAt:     event.CreatedAt(),
	}
}

// toDomain converts a database row to an outbox event.
func toDomain(dto OutboxEventDTO) outbox.Event {
	return outbox.RestoreEvent(
		dto.ID,
		dto.AggregateType,
		dto.AggregateID,
		dto.EventType,
		dto.Payload,
		dto.CreatedAt,
	)
}
