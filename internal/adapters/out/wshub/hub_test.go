package wshub_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurant/internal/adapters/out/wshub"
	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

type wireFrame struct {
	Event   string          `json:"event"`
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

func newHub() *wshub.Hub {
	return wshub.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)), wshub.WithWriteTimeout(time.Second))
}

func subscribe(t *testing.T, hub *wshub.Hub, topic string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(hub.Handler(topic))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, err := websocket.Dial(wsURL, "", srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) wireFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame wireFrame
	require.NoError(t, json.NewDecoder(conn).Decode(&frame))
	return frame
}

func waitSubscribers(t *testing.T, hub *wshub.Hub, topic string, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Subscribers(topic) == n },
		2*time.Second, 10*time.Millisecond)
}

func TestHub_PublishReachesOnlyTheBranchRoom(t *testing.T) {
	hub := newHub()
	branchA := event.Topic(kernel.NewUUID())
	branchB := event.Topic(kernel.NewUUID())

	connA := subscribe(t, hub, branchA)
	connB := subscribe(t, hub, branchB)
	waitSubscribers(t, hub, branchA, 1)
	waitSubscribers(t, hub, branchB, 1)

	e := event.NewIngredientAvailabilityUpdated(kernel.NewUUID(), kernel.NewUUID(), false, time.Now())
	require.NoError(t, hub.Publish(context.Background(), branchA, e.Name, e.Payload))

	frame := readFrame(t, connA)
	assert.Equal(t, string(event.IngredientAvailabilityUpdate), frame.Event)
	assert.Equal(t, branchA, frame.Topic)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(frame.Payload, &payload))
	assert.Equal(t, false, payload["available"])

	require.NoError(t, connB.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	var nothing wireFrame
	assert.Error(t, json.NewDecoder(connB).Decode(&nothing))
}

func TestHub_PublishWithoutSubscribersIsNoop(t *testing.T) {
	hub := newHub()
	assert.NoError(t, hub.Publish(context.Background(), "branch-nobody", event.NewOrder, map[string]string{}))
}

func TestHub_DisconnectLeavesRoom(t *testing.T) {
	hub := newHub()
	topic := event.Topic(kernel.NewUUID())

	conn := subscribe(t, hub, topic)
	waitSubscribers(t, hub, topic, 1)

	require.NoError(t, conn.Close())
	waitSubscribers(t, hub, topic, 0)
}

func TestHub_SweepPingsLiveSubscribers(t *testing.T) {
	hub := newHub()
	topic := event.Topic(kernel.NewUUID())

	conn := subscribe(t, hub, topic)
	waitSubscribers(t, hub, topic, 1)

	assert.Equal(t, 0, hub.Sweep(context.Background()))
	frame := readFrame(t, conn)
	assert.Equal(t, string(wshub.PingEvent), frame.Event)
	assert.Equal(t, 1, hub.Subscribers(topic))
}

func TestHub_CloseDisconnectsEveryone(t *testing.T) {
	hub := newHub()
	topic := event.Topic(kernel.NewUUID())

	subscribe(t, hub, topic)
	subscribe(t, hub, topic)
	waitSubscribers(t, hub, topic, 2)

	hub.Close()
	assert.Equal(t, 0, hub.Subscribers(topic))
}
