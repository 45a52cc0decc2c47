// Package rabbitmq publishes realtime events to a topic exchange so that
// services outside this process can follow branch activity.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/event"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultExchange = "restaurant.events"

// Publisher implements ports.EventPublisher. Each event is routed with the
// key "<topic>.<event>", e.g. "branch-<uuid>.new-order".
type Publisher struct {
	conn     Connection
	exchange string
	now      func() time.Time
}

func NewPublisher(conn Connection, exchange string) *Publisher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Publisher{conn: conn, exchange: exchange, now: time.Now}
}

func RoutingKey(topic string, name event.Name) string {
	return topic + "." + string(name)
}

func (p *Publisher) Publish(ctx context.Context, topic string, name event.Name, payload any) error {
	body, err := json.Marshal(event.NewEnvelope(topic, name, payload))
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if err = ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	err = ch.PublishWithContext(ctx, p.exchange, RoutingKey(topic, name), false, false, amqp.Publishing{
		ContentType: "application/json",
		Type:        string(name),
		Timestamp:   p.now().UTC(),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	return p.conn.Close()
}
