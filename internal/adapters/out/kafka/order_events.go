// Package kafka publishes durable order-changed events. The stream is a
// best-effort mirror of committed transitions: the Order Store row stays the
// source of truth, and a failed publish is logged, never retried against the
// caller.
package kafka

import (
	"context"
	"encoding/json"
	"strings"

	"dispatch/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// OrderEventProducer implements ports.OrderEventPublisher on a kafka topic.
// Events are keyed by order id so all transitions of one order land in the
// same partition, in commit order.
type OrderEventProducer struct {
	w *kafka.Writer
}

// NewOrderEventProducer creates a producer for the order-changed topic.
// brokers is a comma-separated host list.
func NewOrderEventProducer(brokers, topic string) *OrderEventProducer {
	return &OrderEventProducer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(brokers, ",")...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

// Close flushes and closes the underlying writer.
func (p *OrderEventProducer) Close() error {
	return p.w.Close()
}

// PublishStatusChanged writes one status-change event.
func (p *OrderEventProducer) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
}
