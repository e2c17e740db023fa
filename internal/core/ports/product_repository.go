// Package ports defines the contracts between the shop domain and its infrastructure:
// repositories bound to a transaction, the unit of work that owns that transaction,
// and the outbound event publisher.
package ports

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates.
type ProductRepository interface {
	// Add persists a new product.
	Add(ctx context.Context, aggregate *product.Product) error

	// Get reads a product without locking it.
	// Returns product.NotFoundError when no row matches.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate reads a product and locks its row until the transaction ends.
	// Every stock check must go through this method so concurrent reservations
	// are serialized on the row.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// Update writes price and stock back, guarded by the version the aggregate was
	// read with. A stale version yields errs.VersionIsInvalidError.
	Update(ctx context.Context, aggregate *product.Product) error
}
