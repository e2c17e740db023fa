package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// readSnapshot gives multi-statement reads one snapshot.
var readSnapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// GetOrderQueryHandler reads an order header and its line items in one
// snapshot-consistent transaction.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns order.NotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		header, err := readOrderHeader(tx, query.OrderID())
		if err != nil {
			return err
		}

		items, err := readOrderLines(tx, query.OrderID())
		if err != nil {
			return err
		}

		header.Items = items
		response = header
		return nil
	}, readSnapshot)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func readOrderHeader(tx *gorm.DB, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	var (
		id, buyerID          uuid.UUID
		status               string
		total                int64
		createdAt, updatedAt time.Time
	)

	row := tx.Raw(`
		SELECT id, buyer_id, status, total_amount, created_at, updated_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()
	if err := row.Scan(&id, &buyerID, &status, &total, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, order.NewNotFoundError(orderID)
		}
		return GetOrderQueryResponse{}, err
	}

	buyer, err := kernel.UUIDFromBytes(buyerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	parsed, err := order.ParseStatus(status)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		ID:          orderID,
		BuyerID:     buyer,
		Status:      parsed,
		TotalAmount: total,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func readOrderLines(tx *gorm.DB, orderID kernel.UUID) ([]OrderLineResponse, error) {
	rows, err := tx.Raw(`
		SELECT
			li.id,
			li.product_id,
			COALESCE(p.name, ''),
			li.quantity,
			li.price
		FROM order_line_items li
		LEFT JOIN products p ON p.id = li.product_id
		WHERE li.order_id = ?
		ORDER BY li.position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderLineResponse, 0)
	for rows.Next() {
		var (
			item          OrderLineResponse
			id, productID uuid.UUID
		)
		if err = rows.Scan(&id, &productID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		item.Subtotal = int64(item.Quantity) * item.UnitPrice
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
