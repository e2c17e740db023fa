package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var ErrChangeProductPriceCommandIsNotConstructed = errors.New(
	"ChangeProductPriceCommand must be created via NewChangeProductPriceCommand constructor",
)

// ChangeProductPriceCommand sets a new unit price. Stock is not part of it:
// stock only moves through reservations and releases.
type ChangeProductPriceCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	price     int64

	guard guard.ConstructorGuard
}

func NewChangeProductPriceCommand(productID kernel.UUID, price int64) (ChangeProductPriceCommand, error) {
	cmd := ChangeProductPriceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := productID.Validate(); err != nil {
		return ChangeProductPriceCommand{}, err
	}
	if price < 0 {
		return ChangeProductPriceCommand{}, ErrPriceIsNegative
	}

	cmd.productID = productID
	cmd.price = price
	return cmd, nil
}

func (c ChangeProductPriceCommand) Validate() error {
	return c.guard.Validate(ErrChangeProductPriceCommandIsNotConstructed)
}

func (c ChangeProductPriceCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c ChangeProductPriceCommand) Price() int64 {
	return c.price
}
