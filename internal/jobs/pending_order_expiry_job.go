package jobs

import (
	"context"
	"time"

	"shop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// PendingOrdersExpirer runs one expiry sweep.
type PendingOrdersExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpirePendingOrdersCommand) (int, error)
}

// PendingOrderExpiryJob cancels orders that stayed Pending longer than ttl.
type PendingOrderExpiryJob struct {
	handler   PendingOrdersExpirer
	schedule  string
	ttl       time.Duration
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *log.Entry
}

func NewPendingOrderExpiryJob(
	handler PendingOrdersExpirer,
	schedule string,
	ttl time.Duration,
	batchSize int,
	logger *log.Entry,
) *PendingOrderExpiryJob {
	logger = componentLogger(logger, "pending_order_expiry_job")
	return &PendingOrderExpiryJob{
		handler:   handler,
		schedule:  schedule,
		ttl:       ttl,
		batchSize: batchSize,
		timeout:   time.Minute,
		cron:      newCron(logger),
		logger:    logger,
	}
}

func (j *PendingOrderExpiryJob) Start() error {
	cmd, err := commands.NewExpirePendingOrdersCommand(j.ttl, j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithFields(log.Fields{
		"schedule": j.schedule,
		"ttl":      j.ttl.String(),
	}).Info("Pending order expiry job started")
	return nil
}

func (j *PendingOrderExpiryJob) run(cmd commands.ExpirePendingOrdersCommand) {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.WithError(err).WithField("expired", expired).Error("Pending order expiry job failed")
		return
	}
	if expired > 0 {
		j.logger.WithField("expired", expired).Info("Pending orders expired")
	}
}

func (j *PendingOrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Pending order expiry job stopped")
}
