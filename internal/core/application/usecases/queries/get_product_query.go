package queries

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrGetProductQueryIsNotConstructed = errors.New("GetProductQuery must be created via NewGetProductQuery constructor")

// GetProductQuery retrieves the current catalog entry of one product.
type GetProductQuery struct {
	productID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetProductQuery(productID kernel.UUID) (GetProductQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetProductQuery{}, errs.NewValueIsInvalidErrorWithCause("product ID is invalid", err)
	}

	return GetProductQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

func (q GetProductQuery) ProductID() kernel.UUID {
	return q.productID
}

// GetProductQueryResponse is the product read model.
type GetProductQueryResponse struct {
	ID      kernel.UUID
	Name    string
	Price   int64
	Stock   int
	Version int64
}
