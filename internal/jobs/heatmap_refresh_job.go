package jobs

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type demandAggregator interface {
	Handle(ctx context.Context, query queries.AggregateDemandQuery) ([]ports.HeatPoint, error)
}

// HeatmapRefreshSettings controls what the snapshot covers and how long it lives.
type HeatmapRefreshSettings struct {
	Spec string
	// Window is how far back delivery destinations are counted.
	Window time.Duration
	// TTL lets a stale snapshot expire if refreshing stops.
	TTL      time.Duration
	MaxCells int
}

// HeatmapRefreshJob recomputes the demand snapshot and stores it in the cache.
type HeatmapRefreshJob struct {
	aggregator demandAggregator
	cache      ports.HeatmapCache
	settings   HeatmapRefreshSettings
	timeout    time.Duration
	now        func() time.Time
	cron       *cron.Cron
	logger     logrus.FieldLogger
}

func NewHeatmapRefreshJob(
	aggregator demandAggregator,
	cache ports.HeatmapCache,
	settings HeatmapRefreshSettings,
	logger logrus.FieldLogger,
) *HeatmapRefreshJob {
	logger = logger.WithField("component", "heatmap_refresh_job")
	return &HeatmapRefreshJob{
		aggregator: aggregator,
		cache:      cache,
		settings:   settings,
		timeout:    DefaultRunTimeout,
		now:        time.Now,
		cron:       newScheduler(logger),
		logger:     logger,
	}
}

func (j *HeatmapRefreshJob) Name() string {
	return "heatmap refresh"
}

func (j *HeatmapRefreshJob) Start() error {
	if _, err := queries.NewAggregateDemandQuery(j.now(), j.settings.MaxCells); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc(j.settings.Spec, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithFields(logrus.Fields{
		"spec":   j.settings.Spec,
		"window": j.settings.Window.String(),
	}).Info("heatmap refresh job started")
	return nil
}

func (j *HeatmapRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("heatmap refresh job stopped")
}

func (j *HeatmapRefreshJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	query, err := queries.NewAggregateDemandQuery(j.now().UTC().Add(-j.settings.Window), j.settings.MaxCells)
	if err != nil {
		j.logger.WithError(err).Error("heatmap refresh misconfigured")
		return
	}
	points, err := j.aggregator.Handle(ctx, query)
	if err != nil {
		j.logger.WithError(err).Error("demand aggregation failed")
		return
	}
	if err = j.cache.Store(ctx, points, j.settings.TTL); err != nil {
		j.logger.WithError(err).Error("failed to store heatmap snapshot")
		return
	}
	j.logger.WithField("cells", len(points)).Debug("heatmap snapshot refreshed")
}
