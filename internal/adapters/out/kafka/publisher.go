// Package kafka publishes order events from the outbox to Kafka.
package kafka

import (
	"context"
	"fmt"

	"shop/internal/core/ports"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
)

// EventTypeHeader carries the event type next to the JSON payload.
const EventTypeHeader = "event_type"

// Publisher sends outbox messages to one topic through a SyncProducer. Messages
// are keyed by order id, so all events of one order land in one partition and
// keep their order.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *log.Entry
}

// NewProducerConfig returns the producer settings used for order events:
// idempotent writes acknowledged by all in-sync replicas.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V2_1_0_0
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	return config
}

// NewPublisher connects a SyncProducer to the brokers.
func NewPublisher(brokers []string, topic string, logger *log.Entry) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return NewPublisherWithProducer(producer, topic, logger), nil
}

// NewPublisherWithProducer wraps an existing producer.
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *log.Entry) *Publisher {
	if logger == nil {
		logger = log.WithField("component", "kafka-publisher")
	}
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends one message and waits for the broker acknowledgement.
func (p *Publisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(msg.Key),
		Value: sarama.ByteEncoder(msg.Payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(EventTypeHeader), Value: []byte(msg.EventType)},
		},
		Timestamp: msg.OccurredAt,
	})
	if err != nil {
		p.logger.WithError(err).WithFields(log.Fields{
			"topic":      p.topic,
			"key":        msg.Key,
			"event_type": msg.EventType,
		}).Error("failed to send message to kafka")
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.WithFields(log.Fields{
		"topic":     p.topic,
		"key":       msg.Key,
		"partition": partition,
		"offset":    offset,
	}).Debug("message sent to kafka")

	return nil
}

func (p *Publisher) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}

var _ ports.EventPublisher = (*Publisher)(nil)
