package realtime

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/ports"
)

// FanoutPublisher publishes every event to all transports. One failing
// transport does not stop the others; their errors are joined.
type FanoutPublisher struct {
	publishers []ports.EventPublisher
}

func NewFanoutPublisher(publishers ...ports.EventPublisher) *FanoutPublisher {
	res := make([]ports.EventPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			res = append(res, p)
		}
	}
	return &FanoutPublisher{publishers: res}
}

func (f *FanoutPublisher) Publish(ctx context.Context, topic string, name event.Name, payload any) error {
	var errList []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, topic, name, payload); err != nil {
			errList = append(errList, fmt.Errorf("%T: %w", p, err))
		}
	}
	return errors.Join(errList...)
}

// Len is the number of configured transports.
func (f *FanoutPublisher) Len() int {
	return len(f.publishers)
}
