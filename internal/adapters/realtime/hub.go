package realtime

import (
	"context"
	"log"
	"sync"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

const subscriberBuffer = 16

// Hub is an append-only broadcast of SOS alerts to in-process subscribers.
// Every subscriber sees every alert in publish order; nobody steals events
// from anybody else. Alerts are published by the database listener, so
// delivery is at-least-once: a reconnect catch-up may replay an alert.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

var (
	_ ports.SOSBroadcaster    = (*Hub)(nil)
	_ ports.SOSAlertPublisher = (*Hub)(nil)
)

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscription is one subscriber's feed. Close is safe to call more than once.
type Subscription struct {
	hub  *Hub
	ch   chan domain.SOSAlert
	once sync.Once
}

func (s *Subscription) Alerts() <-chan domain.SOSAlert {
	return s.ch
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		s.hub.mu.Unlock()
		close(s.ch)
	})
}

func (h *Hub) Subscribe() ports.SOSSubscription {
	sub := &Subscription{hub: h, ch: make(chan domain.SOSAlert, subscriberBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		return sub
	}
	h.subs[sub] = struct{}{}
	return sub
}

// PublishSOSAlert fans the alert out to every live subscriber. A subscriber
// that has fallen subscriberBuffer alerts behind is skipped rather than
// allowed to stall the broadcast; the catch-up list endpoint covers the gap.
func (h *Hub) PublishSOSAlert(_ context.Context, alert domain.SOSAlert) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.ch <- alert:
		default:
			log.Printf("sos hub: dropping alert %s for slow subscriber", alert.ID)
		}
	}
	return nil
}

// Close tears down all subscriptions. Used on server shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := make([]*Subscription, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}
