package ports

import (
	"context"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
)

// OutboxMessage is a serialized order event waiting to be relayed.
type OutboxMessage struct {
	ID         kernel.UUID
	EventType  string
	Key        string
	Payload    []byte
	OccurredAt time.Time
}

// OutboxRepository stores order events in the same transaction as the order
// change that produced them.
type OutboxRepository interface {
	// Append serializes and stores the events.
	Append(ctx context.Context, events []order.Event) error

	// PullPending returns up to limit unsent messages, oldest first, locking them
	// so that concurrent relays skip rows another relay already holds.
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkSent flags the messages as delivered.
	MarkSent(ctx context.Context, ids []kernel.UUID) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}
