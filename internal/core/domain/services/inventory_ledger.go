package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
	"shop/internal/core/ports"

	log "github.com/sirupsen/logrus"
)

// InventoryLedger reserves and releases product stock.
//
// Key responsibilities:
//   - Locking the product row before every stock check
//   - Refusing reservations above the available stock
//   - Returning the unit price current at reservation time
//   - Tolerating products that disappeared before a release
//
// Example usage:
//
//	ledger := services.NewInventoryLedger(uow.ProductRepository(), logger)
//	price, err := ledger.Reserve(ctx, productID, 3)
//	if errors.Is(err, product.ErrOutOfStock) {
//	    // abort the whole order
//	}
type InventoryLedger struct {
	products ports.ProductRepository
	logger   *log.Entry
}

// NewInventoryLedger binds a ledger to a transactional product repository.
func NewInventoryLedger(products ports.ProductRepository, logger *log.Entry) InventoryLedger {
	if logger == nil {
		logger = log.WithField("component", "inventory-ledger")
	}
	return InventoryLedger{products: products, logger: logger}
}

// LockAll locks the rows of the given products in ascending id order, each
// once. Concurrent orders over overlapping products then queue on the first
// shared row instead of deadlocking. Missing products are skipped so that
// Reserve reports them in request order.
func (l InventoryLedger) LockAll(ctx context.Context, productIDs []kernel.UUID) error {
	ids := make([]kernel.UUID, 0, len(productIDs))
	seen := make(map[kernel.UUID]struct{}, len(productIDs))
	for _, id := range productIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b kernel.UUID) int {
		return strings.Compare(a.String(), b.String())
	})

	for _, id := range ids {
		if _, err := l.products.GetForUpdate(ctx, id); err != nil && !errors.Is(err, product.ErrProductNotFound) {
			return fmt.Errorf("lock product %s: %w", id, err)
		}
	}

	return nil
}

// Reserve takes quantity units of the product out of stock and returns its
// current unit price.
//
// Returns:
//   - product.NotFoundError if the product does not exist
//   - product.OutOfStockError if quantity exceeds the stock read under lock
func (l InventoryLedger) Reserve(ctx context.Context, productID kernel.UUID, quantity int) (int64, error) {
	p, err := l.products.GetForUpdate(ctx, productID)
	if err != nil {
		return 0, err
	}

	if err = p.Reserve(quantity); err != nil {
		return 0, err
	}

	if err = l.products.Update(ctx, p); err != nil {
		return 0, fmt.Errorf("reserve product %s: %w", productID, err)
	}

	return p.Price(), nil
}

// Release puts quantity units of the product back into stock. A missing product
// is logged and skipped; any other failure is returned.
func (l InventoryLedger) Release(ctx context.Context, productID kernel.UUID, quantity int) error {
	p, err := l.products.GetForUpdate(ctx, productID)
	if errors.Is(err, product.ErrProductNotFound) {
		l.logger.WithFields(log.Fields{
			"product_id": productID.String(),
			"quantity":   quantity,
		}).Warn("release skipped: product no longer exists")
		return nil
	}
	if err != nil {
		return err
	}

	if err = p.Release(quantity); err != nil {
		return err
	}

	if err = l.products.Update(ctx, p); err != nil {
		return fmt.Errorf("release product %s: %w", productID, err)
	}

	return nil
}
