package commands

import (
	"context"
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"
	"shop/internal/core/domain/services"
	"shop/internal/metrics"

	log "github.com/sirupsen/logrus"
)

// CreateOrderCommandHandler places orders.
//
// The product rows are locked up front in ascending id order. Stock for every
// item is then reserved through the InventoryLedger in request order, the
// total is computed from the prices read during reservation, and the order
// with its line items is written in the same transaction. The first failing
// reservation aborts everything.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, orderMetrics, logger)
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Printf("order %s total %d", o.ID(), o.TotalAmount())
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	metrics    *metrics.OrderMetrics
	logger     *log.Entry
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// metrics may be nil.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	orderMetrics *metrics.OrderMetrics,
	logger *log.Entry,
) CreateOrderCommandHandler {
	if logger == nil {
		logger = log.WithField("component", "create-order")
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		metrics:    orderMetrics,
		logger:     logger,
	}
}

// Handle reserves stock, builds the order and commits. On any error nothing
// is persisted.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	defer h.metrics.ObserveCommand("create_order", time.Now())

	uow := h.uowFactory.Create()

	var o *order.Order
	err := inTransaction(ctx, uow, func() error {
		ledger := services.NewInventoryLedger(uow.ProductRepository(), h.logger)

		requested := cmd.Items()
		productIDs := make([]kernel.UUID, 0, len(requested))
		for _, req := range requested {
			productIDs = append(productIDs, req.ProductID)
		}
		if err := ledger.LockAll(ctx, productIDs); err != nil {
			return err
		}

		items := make([]*order.LineItem, 0, len(requested))
		var total int64
		for _, req := range requested {
			price, err := ledger.Reserve(ctx, req.ProductID, req.Quantity)
			if err != nil {
				h.metrics.RecordReservationFailure(reservationFailureReason(err))
				return err
			}

			item, err := order.NewLineItem(kernel.NewUUID(), req.ProductID, req.Quantity, price)
			if err != nil {
				return err
			}
			items = append(items, item)

			if total, err = order.AddToTotal(total, item.Subtotal()); err != nil {
				return err
			}
		}

		var err error
		if o, err = order.NewOrder(cmd.OrderID(), cmd.BuyerID(), items, total); err != nil {
			return err
		}

		return uow.OrderRepository().Add(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	h.metrics.RecordOrderCreated()
	h.logger.WithFields(log.Fields{
		"order_id": o.ID().String(),
		"buyer_id": o.BuyerID().String(),
		"items":    len(o.Items()),
		"total":    o.TotalAmount(),
	}).Info("order created")

	return o, nil
}

func reservationFailureReason(err error) string {
	switch {
	case errors.Is(err, product.ErrOutOfStock):
		return metrics.ReasonOutOfStock
	case errors.Is(err, product.ErrProductNotFound):
		return metrics.ReasonProductNotFound
	default:
		return metrics.ReasonOther
	}
}
