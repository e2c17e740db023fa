// Package productrepo persists the product aggregate. Stock is guarded twice:
// by a check constraint on the column and by the version column that every
// update compares against.
package productrepo

import (
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the products table.
type ProductDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Price     int64     `gorm:"type:bigint;not null;check:chk_products_price,price >= 0"`
	Stock     int       `gorm:"type:bigint;not null;check:chk_products_stock,stock >= 0"`
	Version   int64     `gorm:"type:bigint;not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName overrides GORM's default "product_dtos".
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:        p.ID().Bytes(),
		Name:      p.Name(),
		Price:     p.Price(),
		Stock:     p.Stock(),
		Version:   p.Version(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, dto.Price, dto.Stock, dto.Version, dto.CreatedAt, dto.UpdatedAt)
}
