package postgres

import (
	"shop/internal/adapters/out/postgres/orderrepo"
	"shop/internal/adapters/out/postgres/outboxrepo"
	"shop/internal/adapters/out/postgres/productrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables of every repository.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&outboxrepo.OutboxDTO{},
	)
}
