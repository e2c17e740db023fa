package order

import (
	"errors"
	"fmt"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrTotalMismatch is returned when the total does not equal the sum of line subtotals.
	ErrTotalMismatch = errors.New("order total does not match line items")
)

// Order is the aggregate root for a buyer's purchase: the header (buyer, total,
// status) and its line items, which are created together and never change
// membership afterwards.
//
// Order follows these invariants:
//   - Must have a valid identifier and buyer reference
//   - Has at least one line item
//   - totalAmount equals the sum of the line item subtotals at creation time
//   - Status only moves along the state machine described on Status
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// buyerID references the buyer; buyers live outside this service
	buyerID kernel.UUID

	// items are the line items with their price snapshots
	items []*LineItem

	// totalAmount is fixed at creation, in minor currency units
	totalAmount int64

	// status represents the current state in the order lifecycle
	status Status

	createdAt time.Time
	updatedAt time.Time

	// events are recorded by state changes and drained by the unit of work
	events []Event

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status and records an order.created event.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - buyerID: Reference to the buyer placing the order
//   - items: Line items built from reservations (at least one)
//   - totalAmount: Sum of the line item subtotals
//
// Example:
//
//	item, _ := order.NewLineItem(kernel.NewUUID(), productID, 3, 500)
//	o, err := order.NewOrder(kernel.NewUUID(), buyerID, []*order.LineItem{item}, 1500)
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id, buyerID kernel.UUID, items []*LineItem, totalAmount int64) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setItems(items, totalAmount),
	); err != nil {
		return nil, err
	}

	o.record(EventCreated, Unknown, "")
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. No events are recorded.
func RestoreOrder(
	id, buyerID kernel.UUID,
	items []*LineItem,
	totalAmount int64,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setItems(items, totalAmount),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// Items returns a copy of the line item slice.
func (o *Order) Items() []*LineItem {
	items := make([]*LineItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Cancel moves the order to Cancelled and records an order.cancelled event.
//
// Returns AlreadyCancelledError for cancelled orders and NotCancellableError for
// shipped or delivered ones; the order is unchanged in both cases. Releasing the
// reserved stock is the caller's job and must happen in the same transaction.
func (o *Order) Cancel(reason CancelReason) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	if o.status == Cancelled {
		return NewAlreadyCancelledError(o.id)
	}
	if !o.status.IsCancellable() {
		return NewNotCancellableError(o.id, o.status)
	}

	previous := o.status
	o.status = Cancelled
	o.updatedAt = time.Now().UTC()
	o.record(EventCancelled, previous, reason)
	return nil
}

// AdvanceTo moves the order one step forward. Any other target, including
// Cancelled and every move out of a terminal status, is an InvalidTransitionError.
//
// Example:
//
//	if err := o.AdvanceTo(order.Processing); err != nil {
//	    return err
//	}
func (o *Order) AdvanceTo(to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !o.status.CanAdvanceTo(to) {
		return NewInvalidTransitionError(o.id, o.status, to)
	}

	previous := o.status
	o.status = to
	o.updatedAt = time.Now().UTC()
	o.record(EventStatusChanged, previous, "")
	return nil
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []Event {
	events := make([]Event, len(o.events))
	copy(events, o.events)
	return events
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) record(eventType EventType, previous Status, reason CancelReason) {
	o.events = append(o.events, Event{
		ID:             kernel.NewUUID(),
		Type:           eventType,
		OrderID:        o.id,
		BuyerID:        o.buyerID,
		Status:         o.status,
		PreviousStatus: previous,
		Reason:         reason,
		TotalAmount:    o.totalAmount,
		OccurredAt:     o.updatedAt,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("buyer ID is invalid", err)
	}
	o.buyerID = buyerID
	return nil
}

func (o *Order) setItems(items []*LineItem, totalAmount int64) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var sum int64
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		var err error
		if sum, err = AddToTotal(sum, item.Subtotal()); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	if sum != totalAmount {
		return fmt.Errorf("%w: total is %d, items sum to %d", ErrTotalMismatch, totalAmount, sum)
	}

	o.items = make([]*LineItem, len(items))
	copy(o.items, items)
	o.totalAmount = totalAmount
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
