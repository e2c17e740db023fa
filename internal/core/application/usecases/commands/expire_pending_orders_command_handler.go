package commands

import (
	"context"
	"errors"
	"time"

	"shop/internal/core/domain/model/order"

	log "github.com/sirupsen/logrus"
)

// OrderCanceller is the part of CancelOrderCommandHandler the expiry needs.
type OrderCanceller interface {
	Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error)
}

// ExpirePendingOrdersCommandHandler cancels stale Pending orders so their
// stock returns to the shelf. Each order is cancelled in its own transaction
// through the regular cancellation path; an order that moved on in the
// meantime is skipped.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory UoWFactory
	canceller  OrderCanceller
	now        func() time.Time
	logger     *log.Entry
}

func NewExpirePendingOrdersCommandHandler(
	uowFactory UoWFactory,
	canceller OrderCanceller,
	logger *log.Entry,
) ExpirePendingOrdersCommandHandler {
	if logger == nil {
		logger = log.WithField("component", "expire-pending-orders")
	}
	return ExpirePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		canceller:  canceller,
		now:        time.Now,
		logger:     logger,
	}
}

// Handle returns how many orders were cancelled. It stops at the first
// unexpected error; orders cancelled before that stay cancelled.
func (h ExpirePendingOrdersCommandHandler) Handle(ctx context.Context, cmd ExpirePendingOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	before := h.now().UTC().Add(-cmd.TTL())
	ids, err := h.uowFactory.Create().OrderRepository().ListPendingCreatedBefore(ctx, before, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, id := range ids {
		cancel, err := NewCancelOrderCommand(id, order.CancelExpired)
		if err != nil {
			return expired, err
		}

		_, err = h.canceller.Handle(ctx, cancel)
		switch {
		case err == nil:
			expired++
		case errors.Is(err, order.ErrAlreadyCancelled), errors.Is(err, order.ErrNotCancellable):
			h.logger.WithField("order_id", id.String()).WithError(err).Debug("order changed before expiry")
		default:
			return expired, err
		}
	}

	return expired, nil
}
