// Package wshub keeps websocket subscribers grouped in per-branch rooms and
// publishes events to them as JSON frames {event, topic, payload}.
//
// Subscribers only listen. Anything a client sends is read and discarded so
// that a closed connection is noticed and the subscriber leaves its room.
package wshub

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"restaurant/internal/core/domain/model/event"

	"golang.org/x/net/websocket"
)

const (
	DefaultWriteTimeout = 5 * time.Second

	// PingEvent is the keepalive frame sent by Sweep.
	PingEvent event.Name = "ping"
)

type Option func(*Hub)

func WithWriteTimeout(d time.Duration) Option {
	return func(h *Hub) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// Hub implements ports.EventPublisher.
type Hub struct {
	mu           sync.Mutex
	rooms        map[string]*room
	logger       *slog.Logger
	writeTimeout time.Duration
}

func NewHub(logger *slog.Logger, opts ...Option) *Hub {
	h := &Hub{
		rooms:        make(map[string]*room),
		logger:       logger.With("component", "ws_hub"),
		writeTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type subscriber struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	encoder *json.Encoder
	closed  bool
}

func newSubscriber(conn *websocket.Conn) *subscriber {
	return &subscriber{conn: conn, encoder: json.NewEncoder(conn)}
}

func (s *subscriber) write(frame event.Envelope, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return io.ErrClosedPipe
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return s.encoder.Encode(frame)
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	_ = s.conn.Close()
}

type room struct {
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

func (r *room) snapshot() []*subscriber {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]*subscriber, 0, len(r.subscribers))
	for s := range r.subscribers {
		res = append(res, s)
	}
	return res
}

func (h *Hub) join(topic string, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[topic]
	if !ok {
		r = &room{subscribers: make(map[*subscriber]struct{})}
		h.rooms[topic] = r
	}
	r.mu.Lock()
	r.subscribers[s] = struct{}{}
	r.mu.Unlock()
}

// leave drops s from the room and removes the room once it is empty.
func (h *Hub) leave(topic string, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[topic]
	if !ok {
		return
	}
	r.mu.Lock()
	delete(r.subscribers, s)
	empty := len(r.subscribers) == 0
	r.mu.Unlock()
	if empty {
		delete(h.rooms, topic)
	}
}

func (h *Hub) room(topic string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms[topic]
}

// Serve registers conn in the room of topic and blocks until the client
// disconnects.
func (h *Hub) Serve(conn *websocket.Conn, topic string) {
	s := newSubscriber(conn)
	h.join(topic, s)
	h.logger.Debug("Subscriber joined", "topic", topic)

	defer func() {
		h.leave(topic, s)
		s.close()
		h.logger.Debug("Subscriber left", "topic", topic)
	}()

	buf := make([]byte, 512)
	for {
		if _, err := conn.Read(buf); err != nil {
			if !errors.Is(err, io.EOF) {
				h.logger.Debug("Subscriber read failed", "topic", topic, "error", err)
			}
			return
		}
	}
}

// Handler upgrades the request and serves it as a subscriber of topic.
// Authorization happens before the handler is reached.
func (h *Hub) Handler(topic string) websocket.Handler {
	return func(conn *websocket.Conn) {
		h.Serve(conn, topic)
	}
}

// Publish writes the event to every subscriber of topic. Subscribers whose
// write fails are disconnected; that is not an error for the caller.
func (h *Hub) Publish(ctx context.Context, topic string, name event.Name, payload any) error {
	r := h.room(topic)
	if r == nil {
		return nil
	}

	frame := event.NewEnvelope(topic, name, payload)
	for _, s := range r.snapshot() {
		if err := s.write(frame, h.writeTimeout); err != nil {
			h.logger.WarnContext(ctx, "Dropping subscriber after failed write",
				"topic", topic, "event", name, "error", err)
			h.leave(topic, s)
			s.close()
		}
	}
	return nil
}

// Sweep pings every subscriber and disconnects those that cannot be written
// to. It returns the number of dropped subscribers.
func (h *Hub) Sweep(ctx context.Context) int {
	h.mu.Lock()
	topics := make(map[string]*room, len(h.rooms))
	for topic, r := range h.rooms {
		topics[topic] = r
	}
	h.mu.Unlock()

	dropped := 0
	for topic, r := range topics {
		for _, s := range r.snapshot() {
			if ctx.Err() != nil {
				return dropped
			}
			frame := event.NewEnvelope(topic, PingEvent, struct {
				Timestamp time.Time `json:"timestamp"`
			}{Timestamp: time.Now().UTC()})
			if err := s.write(frame, h.writeTimeout); err != nil {
				h.leave(topic, s)
				s.close()
				dropped++
			}
		}
	}
	return dropped
}

// Subscribers is the number of subscribers currently in the room of topic.
func (h *Hub) Subscribers(topic string) int {
	r := h.room(topic)
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	rooms := h.rooms
	h.rooms = make(map[string]*room)
	h.mu.Unlock()

	for _, r := range rooms {
		for _, s := range r.snapshot() {
			s.close()
		}
	}
}
