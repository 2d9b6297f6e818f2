package notifier

import (
	"context"
	"sync"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/core/ports"

	"go.uber.org/zap"
)

const DefaultSubscriberBuffer = 64

// Filter selects the events a subscriber receives.
type Filter func(order.ChangeEvent) bool

// ForActor keeps the events relevant to a: changes of the actor's own
// orders, and for delivery partners also changes of the claimable list.
func ForActor(a actor.Actor) Filter {
	id := a.ID()
	switch a.Role() {
	case actor.Vendor:
		return func(ev order.ChangeEvent) bool { return ev.VendorID.IsEqual(id) }
	case actor.Supplier:
		return func(ev order.ChangeEvent) bool { return ev.SupplierID.IsEqual(id) }
	case actor.DeliveryPartner:
		return func(ev order.ChangeEvent) bool { return ev.Involves(id) || ev.AffectsClaimable() }
	default:
		return func(order.ChangeEvent) bool { return false }
	}
}

// Hub is an in-process sink that fans events out to live subscribers.
// A subscriber that does not keep up with its buffer is disconnected and
// must resubscribe and re-read current state.
type Hub struct {
	logger *zap.Logger
	buffer int

	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

var _ ports.ChangeSink = (*Hub)(nil)

func NewHub(buffer int, l *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &Hub{
		logger: l.With(zap.String("component", "hub")),
		buffer: buffer,
		subs:   make(map[*Subscription]struct{}),
	}
}

func (h *Hub) Name() string {
	return "hub"
}

// Send never blocks and never fails.
func (h *Hub) Send(_ context.Context, ev order.ChangeEvent) error {
	var lagging []*Subscription

	h.mu.RLock()
	for s := range h.subs {
		if !s.filter(ev) {
			continue
		}
		select {
		case s.events <- ev:
		default:
			lagging = append(lagging, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range lagging {
		h.logger.Warn("subscriber lagging, disconnecting", zap.Int("buffer", h.buffer))
		h.remove(s)
	}
	return nil
}

func (h *Hub) Subscribe(filter Filter) *Subscription {
	if filter == nil {
		filter = func(order.ChangeEvent) bool { return true }
	}
	s := &Subscription{
		hub:    h,
		filter: filter,
		events: make(chan order.ChangeEvent, h.buffer),
	}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	close(s.events)
}

type Subscription struct {
	hub    *Hub
	filter Filter
	events chan order.ChangeEvent
}

// Events is closed when the subscription ends, either through Close or
// because the subscriber fell behind.
func (s *Subscription) Events() <-chan order.ChangeEvent {
	return s.events
}

func (s *Subscription) Close() {
	s.hub.remove(s)
}
