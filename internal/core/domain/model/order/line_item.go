package order

import (
	"errors"
	"fmt"
	"math"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	// ErrLineItemIsNotConstructed is returned when a LineItem was not created through
	// NewLineItem or RestoreLineItem.
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")
)

// LineItem is one product line of an order. The unit price is the product price
// captured at reservation time and is never re-read from the catalog.
type LineItem struct {
	id        kernel.UUID
	productID kernel.UUID
	quantity  int
	unitPrice int64

	isConstructed bool
}

// NewLineItem creates a line item for a freshly reserved product.
//
// Example:
//
//	price, err := ledger.Reserve(ctx, productID, 3)
//	if err != nil {
//	    return err
//	}
//	item, err := order.NewLineItem(kernel.NewUUID(), productID, 3, price)
func NewLineItem(id, productID kernel.UUID, quantity int, unitPrice int64) (*LineItem, error) {
	item := &LineItem{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	if item.unitPrice > 0 && int64(item.quantity) > math.MaxInt64/item.unitPrice {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt64/item.unitPrice)
	}

	return item, nil
}

// RestoreLineItem rebuilds a persisted line item.
func RestoreLineItem(id, productID kernel.UUID, quantity int, unitPrice int64) (*LineItem, error) {
	return NewLineItem(id, productID, quantity, unitPrice)
}

func (li *LineItem) Validate() error {
	if li == nil || !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

func (li *LineItem) ID() kernel.UUID {
	return li.id
}

func (li *LineItem) ProductID() kernel.UUID {
	return li.productID
}

func (li *LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the price snapshot in minor currency units.
func (li *LineItem) UnitPrice() int64 {
	return li.unitPrice
}

// Subtotal is UnitPrice times Quantity. NewLineItem guarantees it fits in int64.
func (li *LineItem) Subtotal() int64 {
	return li.unitPrice * int64(li.quantity)
}

// AddToTotal returns total plus amount, or an out of range error when the sum
// does not fit in int64. Both arguments are non-negative.
func AddToTotal(total, amount int64) (int64, error) {
	if amount > math.MaxInt64-total {
		return 0, errs.NewValueIsOutOfRangeError("total amount", fmt.Sprintf("%d + %d", total, amount), 0, int64(math.MaxInt64))
	}
	return total + amount, nil
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("product ID is invalid", err)
	}
	li.productID = productID
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid", fmt.Errorf("%d is negative", unitPrice))
	}
	li.unitPrice = unitPrice
	return nil
}
