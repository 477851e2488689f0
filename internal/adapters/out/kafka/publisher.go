// Package kafka publishes outbox events to Kafka with a synchronous Sarama
// producer. Events are keyed by aggregate id so every status change of one
// package or shipment lands on the same partition and keeps its order.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"freightops/internal/core/domain/model/outbox"

	"github.com/Shopify/sarama"
)

// Publisher implements ports.EventPublisher on top of a Sarama sync
// producer. Package and shipment events go to separate topics.
type Publisher struct {
	producer      sarama.SyncProducer
	packageTopic  string
	shipmentTopic string
	logger        *slog.Logger
}

// NewPublisher creates a Kafka publisher connected to the given brokers.
func NewPublisher(
	brokers []string,
	packageTopic, shipmentTopic string,
	logger *slog.Logger,
) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 10
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Timeout = 5 * time.Second
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &Publisher{
		producer:      producer,
		packageTopic:  packageTopic,
		shipmentTopic: shipmentTopic,
		logger:        logger.With("component", "kafka_publisher"),
	}, nil
}

// Publish sends one outbox event, keyed by its aggregate id.
func (p *Publisher) Publish(ctx context.Context, event outbox.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	topic, err := p.topicFor(event.AggregateType())
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.AggregateID()),
		Value: sarama.ByteEncoder(event.Payload()),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish event",
			"error", err,
			"topic", topic,
			"eventType", event.EventType(),
			"aggregateId", event.AggregateID())
		return fmt.Errorf("failed to publish event to Kafka: %w", err)
	}

	p.logger.DebugContext(ctx, "Event published",
		"topic", topic,
		"eventType", event.EventType(),
		"aggregateId", event.AggregateID(),
		"partition", partition,
		"offset", offset)

	return nil
}

// Close shuts down the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}

func (p *Publisher) topicFor(aggregateType string) (string, error) {
	switch aggregateType {
	case outbox.AggregatePackage:
		return p.packageTopic, nil
	case outbox.AggregateShipment:
		return p.shipmentTopic, nil
	default:
		return "", fmt.Errorf("no topic configured for aggregate type %q", aggregateType)
	}
}
