package order

import (
	"fmt"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

// EventType names an order-changed event on the wire.
type EventType string

const (
	EventCreated       EventType = "order.created"
	EventCancelled     EventType = "order.cancelled"
	EventStatusChanged EventType = "order.status_changed"
)

// CancelReason tells a buyer cancellation apart from an automatic one.
type CancelReason string

const (
	CancelRequested CancelReason = "requested"
	CancelExpired   CancelReason = "expired"
)

func (r CancelReason) Validate() error {
	switch r {
	case CancelRequested, CancelExpired:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("cancel reason is invalid", fmt.Errorf("%q is not a known reason", string(r)))
	}
}

// Event is a domain event recorded by the Order aggregate. The unit of work
// writes pending events to the outbox in the same transaction as the order.
type Event struct {
	ID             kernel.UUID
	Type           EventType
	OrderID        kernel.UUID
	BuyerID        kernel.UUID
	Status         Status
	PreviousStatus Status
	Reason         CancelReason
	TotalAmount    int64
	OccurredAt     time.Time
}
