package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultRunTimeout bounds one execution of a job.
const DefaultRunTimeout = 30 * time.Second

// Job is a scheduled task the manager can start and stop.
type Job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs    []Job
	started []Job
	logger  logrus.FieldLogger
}

func NewJobManager(logger logrus.FieldLogger, jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs, logger: logger.WithField("component", "job_manager")}
}

// StartAll starts the jobs in order. If one fails, the ones already started
// are stopped again.
func (jm *JobManager) StartAll() error {
	for _, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", job.Name(), err)
		}
		jm.started = append(jm.started, job)
	}
	jm.logger.WithField("jobs", len(jm.started)).Info("jobs started")
	return nil
}

// StopAll stops started jobs in reverse order and waits for running
// executions to return.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}

// newScheduler builds a cron that accepts an optional seconds field, recovers
// panics and skips a tick while the previous run is still going.
func newScheduler(logger logrus.FieldLogger) *cron.Cron {
	cronLogger := cron.PrintfLogger(logger)
	return cron.New(
		cron.WithParser(cron.NewParser(
			cron.SecondOptional|cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor,
		)),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
}
