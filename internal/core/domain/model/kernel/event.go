package kernel

// DomainEvent is a fact recorded by an aggregate during a state change.
// RoutingKey selects the audience: a courier id for directed requests,
// an order id for broadcast status updates.
type DomainEvent interface {
	EventName() string
	RoutingKey() string
}

// EventRecorder is embedded by aggregates that raise events. Events are
// collected by the unit of work and published only after commit.
type EventRecorder struct {
	events []DomainEvent
}

func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// DomainEvents returns a copy of the events recorded since the last clear.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
