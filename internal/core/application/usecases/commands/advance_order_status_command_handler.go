package commands

import (
	"context"
	"time"

	"shop/internal/core/domain/model/order"
	"shop/internal/metrics"

	log "github.com/sirupsen/logrus"
)

// AdvanceOrderStatusCommandHandler applies forward status transitions.
// Anything but the direct successor of the current status fails with
// order.InvalidTransitionError and leaves the order untouched.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	metrics    *metrics.OrderMetrics
	logger     *log.Entry
}

func NewAdvanceOrderStatusCommandHandler(
	uowFactory UoWFactory,
	orderMetrics *metrics.OrderMetrics,
	logger *log.Entry,
) AdvanceOrderStatusCommandHandler {
	if logger == nil {
		logger = log.WithField("component", "advance-order-status")
	}
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		metrics:    orderMetrics,
		logger:     logger,
	}
}

func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	defer h.metrics.ObserveCommand("advance_order_status", time.Now())

	uow := h.uowFactory.Create()

	var o *order.Order
	err := inTransaction(ctx, uow, func() error {
		orderRepo := uow.OrderRepository()

		var err error
		o, err = orderRepo.GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if err = o.AdvanceTo(cmd.Status()); err != nil {
			return err
		}

		return orderRepo.UpdateStatus(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	h.metrics.RecordStatusTransition(o.Status().String())
	h.logger.WithFields(log.Fields{
		"order_id": o.ID().String(),
		"status":   o.Status().String(),
	}).Info("order status advanced")

	return o, nil
}
