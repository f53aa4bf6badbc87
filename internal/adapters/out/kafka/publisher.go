// Package kafka publishes domain events of committed transactions to a Kafka
// topic. Messages are keyed by the event's routing key, so every update of an
// order (or every request for a courier) lands on one partition in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/Shopify/sarama"
)

const headerEventName = "event"

type envelope struct {
	Event      string    `json:"event"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

func NewPublisher(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic, now: time.Now}
}

// NewSyncProducer connects a producer that waits for all in-sync replicas.
func NewSyncProducer(brokers []string, clientID string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return producer, nil
}

// Publish sends the events as one batch.
func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	at := p.now().UTC()
	messages := make([]*sarama.ProducerMessage, 0, len(events))
	for _, event := range events {
		data, err := json.Marshal(envelope{
			Event:      event.EventName(),
			Key:        event.RoutingKey(),
			OccurredAt: at,
			Payload:    payloadOf(event),
		})
		if err != nil {
			return fmt.Errorf("encode %s: %w", event.EventName(), err)
		}
		messages = append(messages, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(event.RoutingKey()),
			Value: sarama.ByteEncoder(data),
			Headers: []sarama.RecordHeader{
				{Key: []byte(headerEventName), Value: []byte(event.EventName())},
			},
		})
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.producer.SendMessages(messages); err != nil {
		return fmt.Errorf("publish %d events to %s: %w", len(messages), p.topic, err)
	}
	return nil
}
