package queries

import (
	"context"
	"database/sql"
	"errors"

	"shop/internal/core/domain/model/product"

	"gorm.io/gorm"
)

type GetProductQueryHandler struct {
	db *gorm.DB
}

func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db}
}

// Handle returns product.NotFoundError when the product does not exist.
func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (GetProductQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProductQueryResponse{}, err
	}

	response := GetProductQueryResponse{ID: query.ProductID()}
	row := h.db.WithContext(ctx).Raw(`
		SELECT name, price, stock, version
		FROM products
		WHERE id = ?
	`, query.ProductID().Bytes()).Row()
	if err := row.Scan(&response.Name, &response.Price, &response.Stock, &response.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetProductQueryResponse{}, product.NewNotFoundError(query.ProductID())
		}
		return GetProductQueryResponse{}, err
	}

	return response, nil
}
