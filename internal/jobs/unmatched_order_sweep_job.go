package jobs

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type orderSweeper interface {
	Handle(ctx context.Context, command commands.SweepUnmatchedOrdersCommand) (commands.SweepResult, error)
}

// UnmatchedOrderSweepJob retries matching for READY delivery orders whose
// courier search came up empty when the vendor marked them ready.
type UnmatchedOrderSweepJob struct {
	handler orderSweeper
	spec    string
	limit   int
	timeout time.Duration
	cron    *cron.Cron
	logger  logrus.FieldLogger
}

func NewUnmatchedOrderSweepJob(handler orderSweeper, spec string, limit int, logger logrus.FieldLogger) *UnmatchedOrderSweepJob {
	logger = logger.WithField("component", "unmatched_order_sweep_job")
	return &UnmatchedOrderSweepJob{
		handler: handler,
		spec:    spec,
		limit:   limit,
		timeout: DefaultRunTimeout,
		cron:    newScheduler(logger),
		logger:  logger,
	}
}

func (j *UnmatchedOrderSweepJob) Name() string {
	return "unmatched order sweep"
}

func (j *UnmatchedOrderSweepJob) Start() error {
	if _, err := commands.NewSweepUnmatchedOrdersCommand(j.limit); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc(j.spec, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithField("spec", j.spec).Info("unmatched order sweep job started")
	return nil
}

func (j *UnmatchedOrderSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("unmatched order sweep job stopped")
}

func (j *UnmatchedOrderSweepJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cmd, err := commands.NewSweepUnmatchedOrdersCommand(j.limit)
	if err != nil {
		j.logger.WithError(err).Error("unmatched order sweep misconfigured")
		return
	}
	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.WithError(err).Error("unmatched order sweep failed")
		return
	}

	if result.Matched+result.Pending+result.Failed == 0 {
		return
	}
	j.logger.WithFields(logrus.Fields{
		"matched": result.Matched,
		"pending": result.Pending,
		"failed":  result.Failed,
	}).Info("unmatched order sweep finished")
}
