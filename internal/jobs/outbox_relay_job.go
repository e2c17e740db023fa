package jobs

import (
	"context"
	"time"

	"shop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// OrderEventsPublisher runs one outbox relay batch.
type OrderEventsPublisher interface {
	Handle(ctx context.Context, cmd commands.PublishOrderEventsCommand) (int, error)
}

// OutboxRelayJob publishes pending order events on a cron schedule. A run is
// skipped while the previous one is still going.
type OutboxRelayJob struct {
	handler   OrderEventsPublisher
	schedule  string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *log.Entry
}

// NewOutboxRelayJob creates the relay job. schedule is a six-field cron
// expression with seconds.
func NewOutboxRelayJob(handler OrderEventsPublisher, schedule string, batchSize int, logger *log.Entry) *OutboxRelayJob {
	logger = componentLogger(logger, "outbox_relay_job")
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		timeout:   30 * time.Second,
		cron:      newCron(logger),
		logger:    logger,
	}
}

// Start validates the command once and registers the run.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewPublishOrderEventsCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithField("schedule", j.schedule).Info("Outbox relay job started")
	return nil
}

func (j *OutboxRelayJob) run(cmd commands.PublishOrderEventsCommand) {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.WithError(err).WithField("sent", sent).Error("Outbox relay job failed")
		return
	}
	if sent > 0 {
		j.logger.WithField("sent", sent).Debug("Outbox relay job published events")
	}
}

// Stop waits for a running batch to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay job stopped")
}
