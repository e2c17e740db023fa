// Package outboxrepo stores order events in the "outbox" table in the same
// transaction as the order change, and hands them to the relay in order.
package outboxrepo

import (
	"encoding/json"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxDTO is one pending or sent event.
type OutboxDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType  string     `gorm:"type:varchar(64);not null"`
	Key        string     `gorm:"type:varchar(64);not null"`
	Payload    string     `gorm:"type:jsonb;not null"`
	OccurredAt time.Time  `gorm:"not null;index:idx_outbox_pending,priority:2"`
	SentAt     *time.Time `gorm:"index:idx_outbox_pending,priority:1"`
}

func (OutboxDTO) TableName() string {
	return "outbox"
}

// EventPayload is the JSON body published for every order event.
type EventPayload struct {
	EventID        string `json:"event_id"`
	Type           string `json:"type"`
	OrderID        string `json:"order_id"`
	BuyerID        string `json:"buyer_id"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status,omitempty"`
	Reason         string `json:"reason,omitempty"`
	TotalAmount    int64  `json:"total_amount"`
	OccurredAt     string `json:"occurred_at"`
}

func fromEvent(e order.Event) (OutboxDTO, error) {
	payload := EventPayload{
		EventID:     e.ID.String(),
		Type:        string(e.Type),
		OrderID:     e.OrderID.String(),
		BuyerID:     e.BuyerID.String(),
		Status:      e.Status.String(),
		Reason:      string(e.Reason),
		TotalAmount: e.TotalAmount,
		OccurredAt:  e.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
	if e.PreviousStatus != order.Unknown {
		payload.PreviousStatus = e.PreviousStatus.String()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxDTO{}, err
	}

	return OutboxDTO{
		ID:         e.ID.Bytes(),
		EventType:  string(e.Type),
		Key:        e.OrderID.String(),
		Payload:    string(body),
		OccurredAt: e.OccurredAt,
	}, nil
}

func toMessage(dto OutboxDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:         id,
		EventType:  dto.EventType,
		Key:        dto.Key,
		Payload:    []byte(dto.Payload),
		OccurredAt: dto.OccurredAt,
	}, nil
}
