// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read straight from the tables and return read models, bypassing the
// aggregates and the unit of work.
package queries

import (
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery retrieves one order with its line items.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, query)
//	if errors.Is(err, order.ErrOrderNotFound) {
//	    // 404
//	}
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause("order ID is invalid", err)
	}

	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the order read model. Items keep the order in which
// they were requested.
type GetOrderQueryResponse struct {
	ID          kernel.UUID
	BuyerID     kernel.UUID
	Status      order.Status
	TotalAmount int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []OrderLineResponse
}

// OrderLineResponse is one line of an order. ProductName is empty when the
// product no longer exists in the catalog; UnitPrice is the price captured when
// the order was placed.
type OrderLineResponse struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	UnitPrice   int64
	Subtotal    int64
}
