package http

import (
	"time"

	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewProduct struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}

type PriceChange struct {
	Price int64 `json:"price"`
}

type Product struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Price   int64  `json:"price"`
	Stock   int    `json:"stock"`
	Version int64  `json:"version"`
}

type NewOrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type NewOrder struct {
	BuyerID string         `json:"buyer_id"`
	Items   []NewOrderItem `json:"items"`
}

type StatusChange struct {
	Status string `json:"status"`
}

type OrderLine struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Subtotal    int64  `json:"subtotal"`
}

type Order struct {
	ID          string      `json:"id"`
	BuyerID     string      `json:"buyer_id"`
	Status      string      `json:"status"`
	TotalAmount int64       `json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Items       []OrderLine `json:"items"`
}

type OrderSummary struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func productFromDomain(p *product.Product) Product {
	return Product{
		ID:      p.ID().String(),
		Name:    p.Name(),
		Price:   p.Price(),
		Stock:   p.Stock(),
		Version: p.Version(),
	}
}

func productFromQuery(p queries.GetProductQueryResponse) Product {
	return Product{
		ID:      p.ID.String(),
		Name:    p.Name,
		Price:   p.Price,
		Stock:   p.Stock,
		Version: p.Version,
	}
}

func orderFromDomain(o *order.Order) Order {
	items := make([]OrderLine, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderLine{
			ID:        item.ID().String(),
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Subtotal:  item.Subtotal(),
		})
	}

	return Order{
		ID:          o.ID().String(),
		BuyerID:     o.BuyerID().String(),
		Status:      o.Status().String(),
		TotalAmount: o.TotalAmount(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		Items:       items,
	}
}

func orderFromQuery(o queries.GetOrderQueryResponse) Order {
	items := make([]OrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderLine{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}

	return Order{
		ID:          o.ID.String(),
		BuyerID:     o.BuyerID.String(),
		Status:      o.Status.String(),
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       items,
	}
}

func summariesFromQuery(list []queries.OrderSummaryResponse) []OrderSummary {
	summaries := make([]OrderSummary, 0, len(list))
	for _, s := range list {
		summaries = append(summaries, OrderSummary{
			ID:          s.ID.String(),
			Status:      s.Status.String(),
			TotalAmount: s.TotalAmount,
			ItemCount:   s.ItemCount,
			CreatedAt:   s.CreatedAt,
		})
	}
	return summaries
}
