package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct{ mock.Mock }

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return m.Called(ctx, msgs).Error(0)
}

func (m *MockWriter) Close() error { return m.Called().Error(0) }

func TestPublisher_Publish(t *testing.T) {
	at := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	n, err := order.NewNumber(123123)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), 1, 500)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), n, kernel.NewUUID(), "Ada", "+44700900000", []order.Item{item}, at)
	require.NoError(t, err)
	e := event.NewOrderCreated(o)

	w := &MockWriter{}
	var written []kafka.Message
	w.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil)

	p := newPublisher(w)
	p.now = func() time.Time { return at }
	require.NoError(t, p.Publish(context.Background(), e.Topic, e.Name, e.Payload))

	require.Len(t, written, 1)
	msg := written[0]
	assert.Equal(t, e.Topic, string(msg.Key))
	assert.Equal(t, []kafka.Header{{Key: "event", Value: []byte("new-order")}}, msg.Headers)
	assert.True(t, at.Equal(msg.Time))

	var env map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "new-order", env["event"])
	payload, ok := env["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(123123), payload["orderNumber"])
	assert.Equal(t, float64(500), payload["totalCents"])
}

func TestPublisher_WriteError(t *testing.T) {
	w := &MockWriter{}
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(kafka.LeaderNotAvailable)

	err := newPublisher(w).Publish(context.Background(), "branch-x", event.OrderStatusUpdate, struct{}{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, kafka.LeaderNotAvailable))
}

func TestPublisher_Close(t *testing.T) {
	w := &MockWriter{}
	w.On("Close").Return(nil)

	require.NoError(t, newPublisher(w).Close())
	w.AssertExpectations(t)
}
