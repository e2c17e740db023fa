package commands

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired  = errors.New("at least one item is required")
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// OrderItem is one requested line: a product and how many units of it.
// The price is never part of the request; it is read during reservation.
type OrderItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a buyer's request to place an order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), buyerID, []OrderItem{
//	    {ProductID: keyboardID, Quantity: 1},
//	    {ProductID: mouseID, Quantity: 2},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
//	var oos *product.OutOfStockError
//	if errors.As(err, &oos) {
//	    fmt.Printf("only %d left of %s", oos.Available, oos.ProductID)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	buyerID kernel.UUID
	items   []OrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates ids, requires at least one item and a
// positive quantity on every item.
func NewCreateOrderCommand(orderID, buyerID kernel.UUID, items []OrderItem) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// Items returns the requested lines in request order.
func (c CreateOrderCommand) Items() []OrderItem {
	items := make([]OrderItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return fmt.Errorf("buyer: %w", err)
	}

	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for i, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return fmt.Errorf("item %d product: %w", i, err)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: %w", i, ErrQuantityIsInvalid)
		}
	}

	c.items = make([]OrderItem, len(items))
	copy(c.items, items)
	return nil
}
