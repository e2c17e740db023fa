package commands

import (
	"context"
	"time"

	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/services"
	"shop/internal/metrics"

	log "github.com/sirupsen/logrus"
)

// CancelOrderCommandHandler cancels orders and releases their stock.
//
// The order row is locked first, so a concurrent cancel or status change waits
// and then sees the new status. Status checks happen before any stock moves:
//   - order.AlreadyCancelledError for cancelled orders
//   - order.NotCancellableError for shipped or delivered orders
//
// Example:
//
//	cmd, _ := NewCancelOrderCommand(orderID, order.CancelRequested)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrNotCancellable) {
//	    // too late, the parcel is on its way
//	}
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	metrics    *metrics.OrderMetrics
	logger     *log.Entry
}

func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	orderMetrics *metrics.OrderMetrics,
	logger *log.Entry,
) CancelOrderCommandHandler {
	if logger == nil {
		logger = log.WithField("component", "cancel-order")
	}
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		metrics:    orderMetrics,
		logger:     logger,
	}
}

// Handle cancels the order, releases every line item and commits.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	defer h.metrics.ObserveCommand("cancel_order", time.Now())

	uow := h.uowFactory.Create()

	var o *order.Order
	err := inTransaction(ctx, uow, func() error {
		orderRepo := uow.OrderRepository()

		var err error
		if o, err = orderRepo.GetForUpdate(ctx, cmd.OrderID()); err != nil {
			return err
		}

		if err = o.Cancel(cmd.Reason()); err != nil {
			return err
		}

		ledger := services.NewInventoryLedger(uow.ProductRepository(), h.logger)
		for _, item := range o.Items() {
			if err = ledger.Release(ctx, item.ProductID(), item.Quantity()); err != nil {
				return err
			}
		}

		return orderRepo.UpdateStatus(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	h.metrics.RecordOrderCancelled(string(cmd.Reason()))
	h.logger.WithFields(log.Fields{
		"order_id": o.ID().String(),
		"reason":   cmd.Reason(),
	}).Info("order cancelled")

	return o, nil
}
