package ports

import (
	"context"

	"restaurant/internal/core/domain/model/event"
)

// EventPublisher is a realtime transport: websocket hub, broker, log.
// Delivery is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, name event.Name, payload any) error
}

// EventEmitter accepts events after a successful commit. Emit never blocks
// the caller and never reports failure.
type EventEmitter interface {
	Emit(ctx context.Context, e event.Event)
}
