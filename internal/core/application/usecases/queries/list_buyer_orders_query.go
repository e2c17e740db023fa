package queries

import (
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

const (
	DefaultBuyerOrdersLimit = 20
	MaxBuyerOrdersLimit     = 100
)

var ErrListBuyerOrdersQueryIsNotConstructed = errors.New(
	"ListBuyerOrdersQuery must be created via NewListBuyerOrdersQuery constructor",
)

// ListBuyerOrdersQuery lists the newest orders of one buyer. A zero limit
// means DefaultBuyerOrdersLimit.
type ListBuyerOrdersQuery struct {
	buyerID kernel.UUID
	limit   int
	guard   guard.ConstructorGuard
}

func NewListBuyerOrdersQuery(buyerID kernel.UUID, limit int) (ListBuyerOrdersQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return ListBuyerOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("buyer ID is invalid", err)
	}
	if limit == 0 {
		limit = DefaultBuyerOrdersLimit
	}
	if limit < 0 || limit > MaxBuyerOrdersLimit {
		return ListBuyerOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxBuyerOrdersLimit)
	}

	return ListBuyerOrdersQuery{buyerID: buyerID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListBuyerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListBuyerOrdersQueryIsNotConstructed)
}

func (q ListBuyerOrdersQuery) BuyerID() kernel.UUID {
	return q.buyerID
}

func (q ListBuyerOrdersQuery) Limit() int {
	return q.limit
}

// OrderSummaryResponse is an order header in a listing.
type OrderSummaryResponse struct {
	ID          kernel.UUID
	Status      order.Status
	TotalAmount int64
	ItemCount   int
	CreatedAt   time.Time
}
