// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored as one row in "orders" plus one row per line item in
// "order_line_items"; both are always written and read together.
package orderrepo

import (
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by buyer for listings and by status and creation time for the
// pending-order expiry scan.
type OrderDTO struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	BuyerID     uuid.UUID     `gorm:"type:uuid;not null;index"`
	TotalAmount int64         `gorm:"type:bigint;not null"`
	Status      string        `gorm:"type:varchar(16);not null;index:idx_orders_status_created,priority:1"`
	CreatedAt   time.Time     `gorm:"not null;index:idx_orders_status_created,priority:2"`
	UpdatedAt   time.Time     `gorm:"not null"`
	Items       []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents one line of an order. ProductID is a plain reference:
// products may disappear from the catalog while old orders keep pointing at them.
// Position keeps the request order of the lines.
type LineItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position  int       `gorm:"type:int;not null"`
	Quantity  int       `gorm:"type:bigint;not null;check:chk_order_line_items_quantity,quantity > 0"`
	Price     int64     `gorm:"type:bigint;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for line items.
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := make([]LineItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, LineItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   orderID,
			ProductID: item.ProductID().Bytes(),
			Position:  i,
			Quantity:  item.Quantity(),
			Price:     item.UnitPrice(),
			CreatedAt: o.CreatedAt(),
			UpdatedAt: o.CreatedAt(),
		})
	}

	return OrderDTO{
		ID:          orderID,
		BuyerID:     o.BuyerID().Bytes(),
		TotalAmount: o.TotalAmount(),
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		Items:       items,
	}
}

// toDomain reconstructs the aggregate with RestoreOrder; corrupted rows fail
// the same validation as new orders.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.RestoreLineItem(itemID, productID, itemDTO.Quantity, itemDTO.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, buyerID, items, dto.TotalAmount, status, dto.CreatedAt, dto.UpdatedAt)
}
