package realtime

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/ports"
)

const (
	DefaultWorkers        = 4
	DefaultQueueSize      = 1024
	DefaultPublishTimeout = 5 * time.Second
)

type envelope struct {
	ctx   context.Context
	event event.Event
}

type Option func(*Propagator)

func WithWorkers(n int) Option {
	return func(p *Propagator) {
		if n > 0 {
			p.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(p *Propagator) {
		if n > 0 {
			p.queueSize = n
		}
	}
}

func WithPublishTimeout(d time.Duration) Option {
	return func(p *Propagator) {
		if d > 0 {
			p.publishTimeout = d
		}
	}
}

// Propagator implements ports.EventEmitter.
type Propagator struct {
	publisher      ports.EventPublisher
	logger         *slog.Logger
	workers        int
	queueSize      int
	publishTimeout time.Duration

	mu      sync.RWMutex
	queue   chan envelope
	started bool
	stopped bool
	wg      sync.WaitGroup

	dropped   atomic.Uint64
	failed    atomic.Uint64
	published atomic.Uint64
}

func NewPropagator(publisher ports.EventPublisher, logger *slog.Logger, opts ...Option) *Propagator {
	p := &Propagator{
		publisher:      publisher,
		logger:         logger.With("component", "realtime_propagator"),
		workers:        DefaultWorkers,
		queueSize:      DefaultQueueSize,
		publishTimeout: DefaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.queue = make(chan envelope, p.queueSize)
	return p
}

// Start launches the workers. Calling it twice is a no-op.
func (p *Propagator) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true

	for range p.workers {
		p.wg.Add(1)
		go p.run()
	}
	p.logger.Info("Realtime propagator started", "workers", p.workers, "queue_size", p.queueSize)
}

// Stop stops accepting events and waits for queued ones to be published or
// for ctx to expire.
func (p *Propagator) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.InfoContext(ctx, "Realtime propagator stopped",
			"published", p.published.Load(), "failed", p.failed.Load(), "dropped", p.dropped.Load())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Emit enqueues e without blocking. The caller's cancellation does not
// propagate to delivery; its values (trace span, request id) do.
func (p *Propagator) Emit(ctx context.Context, e event.Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		p.dropped.Add(1)
		p.logger.WarnContext(ctx, "Event dropped, propagator stopped", "topic", e.Topic, "event", e.Name)
		return
	}

	select {
	case p.queue <- envelope{ctx: context.WithoutCancel(ctx), event: e}:
	default:
		p.dropped.Add(1)
		p.logger.WarnContext(ctx, "Event dropped, queue is full", "topic", e.Topic, "event", e.Name)
	}
}

// Dropped is the number of events discarded because the queue was full or closed.
func (p *Propagator) Dropped() uint64 {
	return p.dropped.Load()
}

// Failed is the number of events whose publish returned an error.
func (p *Propagator) Failed() uint64 {
	return p.failed.Load()
}

func (p *Propagator) Published() uint64 {
	return p.published.Load()
}

func (p *Propagator) run() {
	defer p.wg.Done()
	for env := range p.queue {
		p.publish(env)
	}
}

func (p *Propagator) publish(env envelope) {
	ctx, cancel := context.WithTimeout(env.ctx, p.publishTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			p.failed.Add(1)
			p.logger.ErrorContext(ctx, "Event publisher panicked",
				"topic", env.event.Topic, "event", env.event.Name, "panic", r)
		}
	}()

	if err := p.publisher.Publish(ctx, env.event.Topic, env.event.Name, env.event.Payload); err != nil {
		p.failed.Add(1)
		p.logger.ErrorContext(ctx, "Failed to publish event",
			"topic", env.event.Topic, "event", env.event.Name, "error", err)
		return
	}
	p.published.Add(1)
}
