package order

import (
	"fmt"

	"shop/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Processing ──> Shipped ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// Forward moves are one step at a time. Cancelled and Delivered are terminal.
// Cancelled is reached only through Order.Cancel, which also releases stock.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Pending is the initial status: stock is reserved, nothing else happened yet.
	Pending

	// Processing means the order is being prepared.
	Processing

	// Shipped means the order left the warehouse; it can no longer be cancelled.
	Shipped

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal; the reserved stock has been released.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Processing: "PROCESSING",
		Shipped:    "SHIPPED",
		Delivered:  "DELIVERED",
		Cancelled:  "CANCELLED",
	}
}

// forward maps every non-terminal status to its only forward successor.
func forward() map[Status]Status {
	//nolint:exhaustive // terminal statuses have no successor
	return map[Status]Status{
		Pending:    Processing,
		Processing: Shipped,
		Shipped:    Delivered,
	}
}

// ParseStatus converts the persisted/wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case name used in storage and on the wire.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsCancellable reports whether an order in s may still be cancelled.
func (s Status) IsCancellable() bool {
	return s == Pending || s == Processing
}

// Next returns the forward successor of s.
func (s Status) Next() (Status, bool) {
	next, ok := forward()[s]
	return next, ok
}

// CanAdvanceTo reports whether to is the direct forward successor of s.
// Cancelled is never a valid target here: cancellation has its own path.
func (s Status) CanAdvanceTo(to Status) bool {
	next, ok := s.Next()
	return ok && next == to
}
