package product

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product was not created through
	// NewProduct or RestoreProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Product is the aggregate root for a catalog entry and its stock counter.
//
// Invariants:
//   - id is a valid UUID and name is not blank
//   - price >= 0 and stock >= 0 at all times
//   - version is the optimistic concurrency token read from storage; it is
//     advanced by the repository, never by the domain
type Product struct {
	id        kernel.UUID
	name      string
	price     int64
	stock     int
	version   int64
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewProduct creates a catalog entry with its initial stock.
//
// Example:
//
//	p, err := product.NewProduct(kernel.NewUUID(), "Mechanical keyboard", 500, 10)
//	if err != nil {
//	    return err
//	}
func NewProduct(id kernel.UUID, name string, price int64, stock int) (*Product, error) {
	now := time.Now().UTC()
	p := &Product{
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct rebuilds a product from persisted state, applying the same
// validation as NewProduct so corrupted rows are not silently accepted.
func RestoreProduct(
	id kernel.UUID,
	name string,
	price int64,
	stock int,
	version int64,
	createdAt, updatedAt time.Time,
) (*Product, error) {
	p := &Product{
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the product was built by one of the constructors.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

// Price returns the current unit price in minor currency units.
func (p *Product) Price() int64 {
	return p.price
}

func (p *Product) Stock() int {
	return p.stock
}

func (p *Product) Version() int64 {
	return p.version
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// Reserve takes quantity units out of stock.
//
// Returns an OutOfStockError (stock unchanged) when quantity exceeds the
// current stock, and a ValueIsInvalidError for non-positive quantities.
func (p *Product) Reserve(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if quantity > p.stock {
		return NewOutOfStockError(p.id, quantity, p.stock)
	}

	p.stock -= quantity
	p.touch()
	return nil
}

// Release puts quantity units back into stock.
func (p *Product) Release(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if quantity > math.MaxInt-p.stock {
		return errs.NewValueIsOutOfRangeError("stock", p.stock, 0, math.MaxInt-quantity)
	}

	p.stock += quantity
	p.touch()
	return nil
}

// ChangePrice sets a new unit price. Existing orders are unaffected because
// their line items hold their own price snapshot.
func (p *Product) ChangePrice(price int64) error {
	if err := p.setPrice(price); err != nil {
		return err
	}
	p.touch()
	return nil
}

func (p *Product) touch() {
	p.updatedAt = time.Now().UTC()
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price int64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid", fmt.Errorf("%d is negative", price))
	}
	p.price = price
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock is invalid", fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}
