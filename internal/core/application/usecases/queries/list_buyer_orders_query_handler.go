package queries

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListBuyerOrdersQueryHandler lists a buyer's orders, newest first.
type ListBuyerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListBuyerOrdersQueryHandler(db *gorm.DB) ListBuyerOrdersQueryHandler {
	return ListBuyerOrdersQueryHandler{db: db}
}

// Handle returns an empty slice for a buyer without orders.
func (h ListBuyerOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListBuyerOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.total_amount,
			(SELECT COUNT(*) FROM order_line_items li WHERE li.order_id = o.id),
			o.created_at
		FROM orders o
		WHERE o.buyer_id = ?
		ORDER BY o.created_at DESC, o.id
		LIMIT ?
	`, query.BuyerID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderSummaryResponse, 0)
	for rows.Next() {
		var (
			summary OrderSummaryResponse
			id      uuid.UUID
			status  string
		)
		if err = rows.Scan(&id, &status, &summary.TotalAmount, &summary.ItemCount, &summary.CreatedAt); err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if summary.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
