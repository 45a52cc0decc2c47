// Package realtime delivers domain events to subscribers after the triggering
// mutation has been committed.
//
// Propagator decouples emission from delivery: handlers call Emit, which only
// enqueues; worker goroutines publish through a ports.EventPublisher. Delivery
// is best-effort and at-most-once. A full queue drops the event and a publish
// error is logged, and neither ever reaches the caller.
//
// FanoutPublisher forwards one event to several transports (websocket hub,
// AMQP exchange, Kafka topic).
package realtime
