package ports

import (
	"context"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Line items are always written and read together with their order.
type OrderRepository interface {
	// Add persists the order header and all of its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its line items.
	// Returns order.NotFoundError when no row matches.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus writes the status and updated_at of the order unconditionally.
	// Transition rules are enforced by the aggregate before this is called.
	UpdateStatus(ctx context.Context, aggregate *order.Order) error

	// ListPendingCreatedBefore returns up to limit ids of Pending orders created
	// before the given instant, oldest first.
	ListPendingCreatedBefore(ctx context.Context, before time.Time, limit int) ([]kernel.UUID, error)
}
