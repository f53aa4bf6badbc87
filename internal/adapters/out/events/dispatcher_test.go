package events_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/events"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeEvent struct{ name, key string }

func (e fakeEvent) EventName() string  { return e.name }
func (e fakeEvent) RoutingKey() string { return e.key }

type recordingPublisher struct {
	mu      sync.Mutex
	batches [][]kernel.DomainEvent
	err     error
	gate    chan struct{}
	calls   chan struct{}
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{calls: make(chan struct{}, 16)}
}

func (p *recordingPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if p.gate != nil {
		<-p.gate
	}
	p.mu.Lock()
	p.batches = append(p.batches, events)
	p.mu.Unlock()
	p.calls <- struct{}{}
	return p.err
}

func (p *recordingPublisher) published() [][]kernel.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]kernel.DomainEvent(nil), p.batches...)
}

func start(t *testing.T, d *events.Dispatcher) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	return cancel, done
}

func waitCalls(t *testing.T, p *recordingPublisher, n int) {
	t.Helper()
	for range n {
		select {
		case <-p.calls:
		case <-time.After(2 * time.Second):
			t.Fatal("publisher was not called")
		}
	}
}

func TestDispatcher_PublishesInOrder(t *testing.T) {
	publisher := newRecordingPublisher()
	logger, _ := test.NewNullLogger()
	d := events.NewDispatcher(publisher, 8, logger)
	cancel, done := start(t, d)

	d.Dispatch(fakeEvent{"order_placed", "o1"})
	d.Dispatch(fakeEvent{"order_accepted", "o1"}, fakeEvent{"order_ready", "o1"})
	d.Dispatch()
	waitCalls(t, publisher, 2)

	cancel()
	require.NoError(t, <-done)
	batches := publisher.published()
	require.Len(t, batches, 2)
	assert.Equal(t, "order_placed", batches[0][0].EventName())
	assert.Len(t, batches[1], 2)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	publisher := newRecordingPublisher()
	publisher.gate = make(chan struct{})
	logger, hook := test.NewNullLogger()
	d := events.NewDispatcher(publisher, 1, logger)
	cancel, done := start(t, d)

	// The first batch is taken by Run and blocks in the publisher, the second
	// fills the queue, the third has nowhere to go.
	d.Dispatch(fakeEvent{"order_placed", "o1"})
	require.Eventually(t, func() bool {
		d.Dispatch(fakeEvent{"order_accepted", "o1"})
		return hook.LastEntry() != nil
	}, 2*time.Second, 10*time.Millisecond)

	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, 1, entry.Data["dropped"])

	close(publisher.gate)
	cancel()
	require.NoError(t, <-done)
}

func TestDispatcher_LogsPublishErrors(t *testing.T) {
	publisher := newRecordingPublisher()
	publisher.err = errors.New("broker unavailable")
	logger, hook := test.NewNullLogger()
	d := events.NewDispatcher(publisher, 4, logger)
	cancel, done := start(t, d)

	d.Dispatch(fakeEvent{"courier_request", "c1"})
	waitCalls(t, publisher, 1)
	require.Eventually(t, func() bool { return hook.LastEntry() != nil }, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "c1", entry.Data["key"])
}

func TestDispatcher_FlushesQueueOnShutdown(t *testing.T) {
	publisher := newRecordingPublisher()
	logger, _ := test.NewNullLogger()
	d := events.NewDispatcher(publisher, 4, logger)

	d.Dispatch(fakeEvent{"order_placed", "o1"})
	d.Dispatch(fakeEvent{"order_placed", "o2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Run(ctx))

	assert.Len(t, publisher.published(), 2)
}
