package commands

import (
	"errors"
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var (
	ErrCreateProductCommandIsNotConstructed = errors.New(
		"CreateProductCommand must be created via NewCreateProductCommand constructor",
	)
	ErrNameIsRequired  = errors.New("name is required")
	ErrPriceIsNegative = errors.New("price must not be negative")
	ErrStockIsNegative = errors.New("stock must not be negative")
)

// CreateProductCommand adds a catalog entry with its initial stock.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	name      string
	price     int64
	stock     int

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(productID kernel.UUID, name string, price int64, stock int) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setName(name),
		cmd.setPrice(price),
		cmd.setStock(stock),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return cmd, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c CreateProductCommand) Name() string {
	return c.name
}

func (c CreateProductCommand) Price() int64 {
	return c.price
}

func (c CreateProductCommand) Stock() int {
	return c.stock
}

func (c *CreateProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *CreateProductCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateProductCommand) setPrice(price int64) error {
	if price < 0 {
		return ErrPriceIsNegative
	}

	c.price = price
	return nil
}

func (c *CreateProductCommand) setStock(stock int) error {
	if stock < 0 {
		return ErrStockIsNegative
	}

	c.stock = stock
	return nil
}
