// Package kafka appends realtime events to a Kafka topic. Messages are keyed
// by branch topic so that one branch's events stay ordered in a partition.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/event"

	"github.com/segmentio/kafka-go"
)

const EventHeader = "event"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher.
type Publisher struct {
	writer messageWriter
	now    func() time.Time
}

// NewPublisher writes to topic on the given brokers with hash balancing on the key.
func NewPublisher(brokers []string, topic string) *Publisher {
	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	})
}

func newPublisher(w messageWriter) *Publisher {
	return &Publisher{writer: w, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, topic string, name event.Name, payload any) error {
	value, err := json.Marshal(event.NewEnvelope(topic, name, payload))
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	msg := kafka.Message{
		Key:     []byte(topic),
		Value:   value,
		Headers: []kafka.Header{{Key: EventHeader, Value: []byte(name)}},
		Time:    p.now().UTC(),
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
