package outboxrepo

import (
	"context"
	"time"

	"freightops/internal/core/domain/model/outbox"

	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add persists pending events. Called inside the transaction that appended
// the status log entries the events describe.
func (r *GormOutboxRepository) Add(ctx context.Context, events []outbox.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxEventDTO, 0, len(events))
	for _, event := range events {
		if err := event.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(event))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetPending retrieves up to limit unpublished events, oldest first.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]outbox.Event, error) {
	var dtos []OutboxEventDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("id ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]outbox.Event, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, toDomain(dto))
	}

	return events, nil
}

// MarkPublished records the delivery time so the dispatcher skips the event
// on the next run.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&OutboxEventDTO{}).
		Where("id = ?", id).
		Update("published_at", &now).Error
}
