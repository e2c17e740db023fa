package commands

import (
	"context"

	"shop/internal/core/domain/model/product"
)

// ChangeProductPriceCommandHandler updates catalog prices. Orders placed before
// the change keep the price captured in their line items.
type ChangeProductPriceCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewChangeProductPriceCommandHandler(uowFactory ProductUoWFactory) ChangeProductPriceCommandHandler {
	return ChangeProductPriceCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ChangeProductPriceCommandHandler) Handle(ctx context.Context, cmd ChangeProductPriceCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	var p *product.Product
	err := inTransaction(ctx, uow, func() error {
		repo := uow.ProductRepository()

		var err error
		p, err = repo.GetForUpdate(ctx, cmd.ProductID())
		if err != nil {
			return err
		}

		if err = p.ChangePrice(cmd.Price()); err != nil {
			return err
		}

		return repo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}
