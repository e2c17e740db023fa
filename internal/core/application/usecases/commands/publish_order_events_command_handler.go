package commands

import (
	"context"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/ports"
	"shop/internal/metrics"

	log "github.com/sirupsen/logrus"
)

// PublishOrderEventsCommandHandler drains the outbox to the broker.
//
// Messages are published in outbox order. The first failure stops the batch:
// messages published before it are marked sent and committed, the failed one
// and everything after it stay pending for the next run. Delivery is therefore
// at least once.
type PublishOrderEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	metrics    *metrics.OrderMetrics
	logger     *log.Entry
}

func NewPublishOrderEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	orderMetrics *metrics.OrderMetrics,
	logger *log.Entry,
) PublishOrderEventsCommandHandler {
	if logger == nil {
		logger = log.WithField("component", "outbox-relay")
	}
	return PublishOrderEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		metrics:    orderMetrics,
		logger:     logger,
	}
}

// Handle returns the number of messages published in this run.
func (h PublishOrderEventsCommandHandler) Handle(ctx context.Context, cmd PublishOrderEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()

	var (
		sent       []kernel.UUID
		publishErr error
	)
	err := inTransaction(ctx, uow, func() error {
		outbox := uow.OutboxRepository()

		messages, err := outbox.PullPending(ctx, cmd.BatchSize())
		if err != nil {
			return err
		}

		for _, msg := range messages {
			if err = h.publisher.Publish(ctx, msg); err != nil {
				h.metrics.RecordOutboxFailed()
				publishErr = fmt.Errorf("publish outbox message %s: %w", msg.ID, err)
				break
			}
			sent = append(sent, msg.ID)
		}

		if len(sent) == 0 {
			return nil
		}
		return outbox.MarkSent(ctx, sent)
	})
	if err != nil {
		return 0, err
	}

	h.metrics.RecordOutboxPublished(len(sent))
	if len(sent) > 0 {
		h.logger.WithField("count", len(sent)).Debug("outbox messages published")
	}

	return len(sent), publishErr
}
