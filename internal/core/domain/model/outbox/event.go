// Package outbox provides the transactional-outbox event written alongside
// every status change. Events are inserted in the same transaction as the
// status-log append and drained to Kafka by a background job, so downstream
// consumers never see a status change that was rolled back.
package outbox

import (
	"encoding/json"
	"errors"
	"time"

	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/domain/model/shipment"
)

// Aggregate type discriminators for outbox rows.
const (
	AggregatePackage  = "package"
	AggregateShipment = "shipment"
)

// Event type names published to Kafka.
const (
	EventPackageStatusChanged  = "package_status_changed"
	EventShipmentStatusChanged = "shipment_status_changed"
)

// ErrEventIsNotConstructed is returned when an Event was not created through
// one of the factory functions.
var ErrEventIsNotConstructed = errors.New("outbox Event must be created via a New*Event factory")

// statusChangedPayload is the wire format of a status-changed event.
type statusChangedPayload struct {
	EntityID    string    `json:"entityId"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	ChangedBy   string    `json:"changedBy"`
	ChangedAt   time.Time `json:"changedAt"`
}

// Event is one pending outbox row: a status change waiting to be published.
type Event struct {
	id            int64
	aggregateType string
	aggregateID   string
	eventType     string
	payload       []byte
	createdAt     time.Time

	isConstructed bool
}

// NewPackageStatusEvent creates the outbox event for a package status-log
// append.
func NewPackageStatusEvent(entry parcel.LogEntry) (Event, error) {
	if err := entry.Validate(); err != nil {
		return Event{}, err
	}

	payload, err := json.Marshal(statusChangedPayload{
		EntityID:    entry.PackageID().String(),
		Status:      entry.Status().String(),
		Description: entry.Description(),
		ChangedBy:   entry.CreatedBy().String(),
		ChangedAt:   entry.CreatedAt(),
	})
	if err != nil {
		return Event{}, err
	}

	return Event{
		aggregateType: AggregatePackage,
		aggregateID:   entry.PackageID().String(),
		eventType:     EventPackageStatusChanged,
		payload:       payload,
		createdAt:     entry.CreatedAt(),
		isConstructed: true,
	}, nil
}

// NewShipmentStatusEvent creates the outbox event for a shipment status-log
// append.
func NewShipmentStatusEvent(entry shipment.LogEntry) (Event, error) {
	if err := entry.Validate(); err != nil {
		return Event{}, err
	}

	payload, err := json.Marshal(statusChangedPayload{
		EntityID:    entry.ShipmentID().String(),
		Status:      entry.Status().String(),
		Description: entry.Description(),
		ChangedBy:   entry.CreatedBy().String(),
		ChangedAt:   entry.CreatedAt(),
	})
	if err != nil {
		return Event{}, err
	}

	return Event{
		aggregateType: AggregateShipment,
		aggregateID:   entry.ShipmentID().String(),
		eventType:     EventShipmentStatusChanged,
		payload:       payload,
		createdAt:     entry.CreatedAt(),
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs a persisted outbox row.
func RestoreEvent(
	id int64,
	aggregateType, aggregateID, eventType string,
	payload []byte,
	createdAt time.Time,
) Event {
	return Event{
		id:            id,
		aggregateType: aggregateType,
		aggregateID:   aggregateID,
		eventType:     eventType,
		payload:       payload,
		createdAt:     createdAt,
		isConstructed: true,
	}
}

// Validate ensures the event was created through a factory.
func (e Event) Validate() error {
	if !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the storage-assigned row id, zero for unpersisted events.
func (e Event) ID() int64 {
	return e.id
}

// AggregateType returns the kind of entity the event concerns.
func (e Event) AggregateType() string {
	return e.aggregateType
}

// AggregateID returns the entity id, used as the Kafka partition key so
// one entity's events stay ordered.
func (e Event) AggregateID() string {
	return e.aggregateID
}

// EventType returns the published event name.
func (e Event) EventType() string {
	return e.eventType
}

// Payload returns the JSON event body.
func (e Event) Payload() []byte {
	return e.payload
}

// CreatedAt returns when the underlying status change happened.
func (e Event) CreatedAt() time.Time {
	return e.createdAt
}
