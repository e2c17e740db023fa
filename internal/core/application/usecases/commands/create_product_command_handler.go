package commands

import (
	"context"

	"shop/internal/core/domain/model/product"
)

// CreateProductCommandHandler registers new catalog entries.
type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewCreateProductCommandHandler(uowFactory ProductUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := product.NewProduct(cmd.ProductID(), cmd.Name(), cmd.Price(), cmd.Stock())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = inTransaction(ctx, uow, func() error {
		return uow.ProductRepository().Add(ctx, p)
	}); err != nil {
		return nil, err
	}

	return p, nil
}
