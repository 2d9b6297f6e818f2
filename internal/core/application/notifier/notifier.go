// Package notifier fans committed order changes out to sinks and to
// in-process subscribers.
//
// Delivery is at least once and best effort. A sink that fails gets the
// event queued for the retry job, and while an event of an order is queued
// for a sink, later events of the same order for that sink queue behind it.
// Errors never reach the caller of Publish.
package notifier

import (
	"context"
	"sync"
	"time"

	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/core/ports"
	"supplyhub/internal/pkg/logger"
	"supplyhub/internal/pkg/metrics"

	"go.uber.org/zap"
)

const (
	DefaultSendTimeout = 2 * time.Second
	DefaultQueueLimit  = 1000
)

type Option func(*Notifier)

func WithSendTimeout(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.timeout = d
		}
	}
}

// WithQueueLimit bounds the events held per sink. Events published while
// the queue is full are dropped and counted.
func WithQueueLimit(limit int) Option {
	return func(n *Notifier) {
		if limit > 0 {
			n.limit = limit
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Notifier) {
		n.metrics = m
	}
}

type Notifier struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
	timeout time.Duration
	limit   int
	queues  []*sinkQueue
}

var _ ports.ChangePublisher = (*Notifier)(nil)

func New(l *zap.Logger, sinks []ports.ChangeSink, opts ...Option) *Notifier {
	if l == nil {
		l = zap.NewNop()
	}
	n := &Notifier{
		logger:  l.With(zap.String("component", "notifier")),
		timeout: DefaultSendTimeout,
		limit:   DefaultQueueLimit,
	}
	for _, opt := range opts {
		opt(n)
	}
	for _, s := range sinks {
		n.queues = append(n.queues, &sinkQueue{sink: s})
	}
	return n
}

// Publish hands ev to every sink. It returns once each sink has either
// accepted the event or had it queued.
func (n *Notifier) Publish(ctx context.Context, ev order.ChangeEvent) {
	log := logger.FromCtx(ctx, n.logger)
	for _, q := range n.queues {
		if q.holds(ev.OrderID) {
			n.enqueue(log, q, ev, "earlier event of the order is queued")
			continue
		}
		if err := n.send(ctx, q.sink, ev); err != nil {
			n.failed(log, q, ev, err)
			n.enqueue(log, q, ev, "send failed")
		}
	}
}

// Flush retries queued events in publication order and returns how many
// were delivered. An event that fails again blocks the rest of its order
// until the next flush.
func (n *Notifier) Flush(ctx context.Context) int {
	delivered := 0
	for _, q := range n.queues {
		delivered += q.flush(func(ev order.ChangeEvent) error {
			err := n.send(ctx, q.sink, ev)
			if err != nil {
				n.failed(n.logger, q, ev, err)
			}
			return err
		})
		n.observeQueue(q)
	}
	return delivered
}

// Pending returns the number of queued events per sink name.
func (n *Notifier) Pending() map[string]int {
	out := make(map[string]int, len(n.queues))
	for _, q := range n.queues {
		out[q.sink.Name()] = q.len()
	}
	return out
}

func (n *Notifier) send(ctx context.Context, sink ports.ChangeSink, ev order.ChangeEvent) error {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()
	return sink.Send(sendCtx, ev)
}

func (n *Notifier) failed(log *zap.Logger, q *sinkQueue, ev order.ChangeEvent, err error) {
	log.Warn("change event delivery failed",
		zap.String("sink", q.sink.Name()),
		zap.String("order_id", ev.OrderID.String()),
		zap.String("new_status", ev.NewStatus.String()),
		zap.Error(err),
	)
	if n.metrics != nil {
		n.metrics.NotifierFailures.WithLabelValues(q.sink.Name()).Inc()
	}
}

func (n *Notifier) enqueue(log *zap.Logger, q *sinkQueue, ev order.ChangeEvent, reason string) {
	if !q.push(ev, n.limit) {
		log.Error("change event dropped, retry queue is full",
			zap.String("sink", q.sink.Name()),
			zap.String("order_id", ev.OrderID.String()),
			zap.Int("limit", n.limit),
		)
		if n.metrics != nil {
			n.metrics.NotifierDropped.WithLabelValues(q.sink.Name()).Inc()
		}
		return
	}
	log.Debug("change event queued",
		zap.String("sink", q.sink.Name()),
		zap.String("order_id", ev.OrderID.String()),
		zap.String("reason", reason),
	)
	n.observeQueue(q)
}

func (n *Notifier) observeQueue(q *sinkQueue) {
	if n.metrics != nil {
		n.metrics.NotifierQueueSize.WithLabelValues(q.sink.Name()).Set(float64(q.len()))
	}
}

type sinkQueue struct {
	sink ports.ChangeSink

	flushMu sync.Mutex
	mu      sync.Mutex
	pending []order.ChangeEvent
}

func (q *sinkQueue) holds(orderID kernel.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, ev := range q.pending {
		if ev.OrderID.IsEqual(orderID) {
			return true
		}
	}
	return false
}

func (q *sinkQueue) push(ev order.ChangeEvent, limit int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) >= limit {
		return false
	}
	q.pending = append(q.pending, ev)
	return true
}

func (q *sinkQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// flush sends a snapshot of the queue. Publishers only append, so the
// snapshot stays a prefix of pending while the sends run.
func (q *sinkQueue) flush(send func(order.ChangeEvent) error) int {
	q.flushMu.Lock()
	defer q.flushMu.Unlock()

	q.mu.Lock()
	batch := append([]order.ChangeEvent(nil), q.pending...)
	q.mu.Unlock()
	if len(batch) == 0 {
		return 0
	}

	blocked := make(map[kernel.UUID]bool)
	kept := make([]order.ChangeEvent, 0, len(batch))
	for _, ev := range batch {
		if blocked[ev.OrderID] {
			kept = append(kept, ev)
			continue
		}
		if err := send(ev); err != nil {
			blocked[ev.OrderID] = true
			kept = append(kept, ev)
		}
	}

	q.mu.Lock()
	q.pending = append(kept, q.pending[len(batch):]...)
	q.mu.Unlock()

	return len(batch) - len(kept)
}
