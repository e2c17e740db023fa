package product

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	// ErrProductNotFound matches every NotFoundError.
	ErrProductNotFound = errors.New("product not found")

	// ErrOutOfStock matches every OutOfStockError.
	ErrOutOfStock = errors.New("product is out of stock")
)

// NotFoundError reports a product identifier with no matching row. It matches
// both ErrProductNotFound and errs.ErrObjectNotFound.
type NotFoundError struct {
	ProductID kernel.UUID
}

func NewNotFoundError(productID kernel.UUID) *NotFoundError {
	return &NotFoundError{ProductID: productID}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrProductNotFound, e.ProductID)
}

func (e *NotFoundError) Unwrap() []error {
	return []error{ErrProductNotFound, errs.ErrObjectNotFound}
}

// OutOfStockError carries the figures a caller needs to explain a failed reservation.
type OutOfStockError struct {
	ProductID kernel.UUID
	Requested int
	Available int
}

func NewOutOfStockError(productID kernel.UUID, requested, available int) *OutOfStockError {
	return &OutOfStockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s: product %s, requested %d, available %d",
		ErrOutOfStock, e.ProductID, e.Requested, e.Available)
}

func (e *OutOfStockError) Unwrap() error {
	return ErrOutOfStock
}
