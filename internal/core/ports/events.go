package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// EventSink accepts events of committed transactions. It must not block and
// cannot fail the caller: notification is best effort.
type EventSink interface {
	Dispatch(events ...kernel.DomainEvent)
}

// EventPublisher delivers events to the notification channel.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
