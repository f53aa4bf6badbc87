// Package events hands committed domain events to the publisher off the
// request path.
package events

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBufferSize     = 256
	DefaultPublishTimeout = 5 * time.Second
)

// Dispatcher implements ports.EventSink with a bounded queue drained by Run.
// A full queue drops the batch.
type Dispatcher struct {
	queue     chan []kernel.DomainEvent
	publisher ports.EventPublisher
	timeout   time.Duration
	logger    logrus.FieldLogger
}

func NewDispatcher(publisher ports.EventPublisher, bufferSize int, logger logrus.FieldLogger) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Dispatcher{
		queue:     make(chan []kernel.DomainEvent, bufferSize),
		publisher: publisher,
		timeout:   DefaultPublishTimeout,
		logger:    logger.WithField("component", "event_dispatcher"),
	}
}

// Dispatch never blocks.
func (d *Dispatcher) Dispatch(events ...kernel.DomainEvent) {
	if len(events) == 0 {
		return
	}
	select {
	case d.queue <- events:
	default:
		d.logger.WithFields(logrus.Fields{
			"dropped": len(events),
			"event":   events[0].EventName(),
		}).Warn("event queue full, dropping batch")
	}
}

// Run publishes queued batches until ctx is done, then flushes whatever is
// already queued. Each batch is bounded by the publish timeout, not by ctx.
func (d *Dispatcher) Run(ctx context.Context) error {
	base := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			d.drain(base)
			return nil
		case batch := <-d.queue:
			d.publish(base, batch)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	for {
		select {
		case batch := <-d.queue:
			d.publish(ctx, batch)
		default:
			return
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, batch []kernel.DomainEvent) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, batch...); err != nil {
		d.logger.WithError(err).WithFields(logrus.Fields{
			"events": len(batch),
			"event":  batch[0].EventName(),
			"key":    batch[0].RoutingKey(),
		}).Error("failed to publish events")
	}
}
