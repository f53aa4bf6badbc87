package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type MockOrderSweeper struct{ mock.Mock }

func (m *MockOrderSweeper) Handle(
	ctx context.Context,
	cmd commands.SweepUnmatchedOrdersCommand,
) (commands.SweepResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SweepResult), args.Error(1)
}

type MockDemandAggregator struct{ mock.Mock }

func (m *MockDemandAggregator) Handle(ctx context.Context, query queries.AggregateDemandQuery) ([]ports.HeatPoint, error) {
	args := m.Called(ctx, query)
	points, _ := args.Get(0).([]ports.HeatPoint)
	return points, args.Error(1)
}

type MockHeatmapCache struct{ mock.Mock }

func (m *MockHeatmapCache) Load(ctx context.Context) ([]ports.HeatPoint, bool, error) {
	args := m.Called(ctx)
	points, _ := args.Get(0).([]ports.HeatPoint)
	return points, args.Bool(1), args.Error(2)
}

func (m *MockHeatmapCache) Store(ctx context.Context, points []ports.HeatPoint, ttl time.Duration) error {
	return m.Called(ctx, points, ttl).Error(0)
}

func TestUnmatchedOrderSweepJob_Run(t *testing.T) {
	tests := []struct {
		name      string
		result    commands.SweepResult
		err       error
		wantLevel logrus.Level
		wantLogs  int
	}{
		{name: "nothing to do", wantLogs: 0},
		{name: "some matched", result: commands.SweepResult{Matched: 2, Pending: 1}, wantLevel: logrus.InfoLevel, wantLogs: 1},
		{name: "store down", err: errors.New("connection refused"), wantLevel: logrus.ErrorLevel, wantLogs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sweeper := new(MockOrderSweeper)
			sweeper.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SweepUnmatchedOrdersCommand) bool {
				return cmd.Limit() == 50
			})).Return(tt.result, tt.err).Once()
			logger, hook := test.NewNullLogger()

			NewUnmatchedOrderSweepJob(sweeper, "@every 1m", 50, logger).run()

			sweeper.AssertExpectations(t)
			require.Len(t, hook.AllEntries(), tt.wantLogs)
			if tt.wantLogs > 0 {
				assert.Equal(t, tt.wantLevel, hook.LastEntry().Level)
			}
		})
	}
}

func TestHeatmapRefreshJob_Run(t *testing.T) {
	aggregator := new(MockDemandAggregator)
	cache := new(MockHeatmapCache)
	logger, hook := test.NewNullLogger()
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	points := []ports.HeatPoint{{Lat: 6.45, Lng: 3.47, Intensity: 1}}

	aggregator.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.AggregateDemandQuery) bool {
		return q.Since().Equal(now.Add(-6*time.Hour)) && q.Limit() == 100
	})).Return(points, nil).Once()
	cache.On("Store", mock.Anything, points, 30*time.Minute).Return(nil).Once()

	job := NewHeatmapRefreshJob(aggregator, cache, HeatmapRefreshSettings{
		Spec:     "@every 5m",
		Window:   6 * time.Hour,
		TTL:      30 * time.Minute,
		MaxCells: 100,
	}, logger)
	job.now = func() time.Time { return now }
	job.run()

	aggregator.AssertExpectations(t)
	cache.AssertExpectations(t)
	assert.Empty(t, hook.AllEntries())
}

func TestHeatmapRefreshJob_KeepsOldSnapshotOnFailure(t *testing.T) {
	aggregator := new(MockDemandAggregator)
	cache := new(MockHeatmapCache)
	logger, hook := test.NewNullLogger()
	aggregator.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()

	NewHeatmapRefreshJob(aggregator, cache, HeatmapRefreshSettings{
		Spec: "@every 5m", Window: time.Hour, TTL: time.Hour, MaxCells: 10,
	}, logger).run()

	cache.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

type fakeJob struct {
	name     string
	startErr error
	events   *[]string
}

func (j fakeJob) Name() string { return j.name }

func (j fakeJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.events = append(*j.events, "start "+j.name)
	return nil
}

func (j fakeJob) Stop() { *j.events = append(*j.events, "stop "+j.name) }

func TestJobManager_StopsStartedJobsWhenOneFails(t *testing.T) {
	var events []string
	logger, _ := test.NewNullLogger()
	manager := NewJobManager(logger,
		fakeJob{name: "sweep", events: &events},
		fakeJob{name: "refresh", events: &events},
		fakeJob{name: "broken", startErr: errors.New("bad spec"), events: &events},
	)

	err := manager.StartAll()

	require.ErrorContains(t, err, "broken")
	assert.Equal(t, []string{"start sweep", "start refresh", "stop refresh", "stop sweep"}, events)
}

func TestJobs_StartAndStop(t *testing.T) {
	defer goleak.VerifyNone(t)
	logger, _ := test.NewNullLogger()

	sweep := NewUnmatchedOrderSweepJob(new(MockOrderSweeper), "@every 1h", 50, logger)
	refresh := NewHeatmapRefreshJob(new(MockDemandAggregator), new(MockHeatmapCache), HeatmapRefreshSettings{
		Spec: "0 */5 * * * *", Window: time.Hour, TTL: time.Hour, MaxCells: 10,
	}, logger)
	manager := NewJobManager(logger, sweep, refresh)

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

func TestJobs_RejectBadSchedules(t *testing.T) {
	logger, _ := test.NewNullLogger()

	assert.Error(t, NewUnmatchedOrderSweepJob(new(MockOrderSweeper), "every now and then", 50, logger).Start())
	assert.Error(t, NewUnmatchedOrderSweepJob(new(MockOrderSweeper), "@every 1m", 0, logger).Start())
	assert.Error(t, NewHeatmapRefreshJob(new(MockDemandAggregator), new(MockHeatmapCache), HeatmapRefreshSettings{
		Spec: "@every 1m", MaxCells: 0,
	}, logger).Start())
}
