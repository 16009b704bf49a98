package realtime

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
)

func receiveAlert(t *testing.T, sub *Subscription) domain.SOSAlert {
	t.Helper()
	select {
	case alert, ok := <-sub.Alerts():
		if !ok {
			t.Fatal("subscription channel closed unexpectedly")
		}
		return alert
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for alert")
	}
	return domain.SOSAlert{}
}

func TestHub_EverySubscriberSeesEveryAlertInOrder(t *testing.T) {
	hub := NewHub()
	first := hub.Subscribe().(*Subscription)
	second := hub.Subscribe().(*Subscription)

	alerts := []domain.SOSAlert{
		{ID: "a-1", RoomNo: "B-204"},
		{ID: "a-2", RoomNo: "C-101"},
		{ID: "a-3", RoomNo: "D-310"},
	}
	for _, alert := range alerts {
		if err := hub.PublishSOSAlert(context.Background(), alert); err != nil {
			t.Fatalf("publish %s: %v", alert.ID, err)
		}
	}

	for _, sub := range []*Subscription{first, second} {
		for i, want := range alerts {
			got := receiveAlert(t, sub)
			if got.ID != want.ID {
				t.Errorf("alert %d = %s, want %s", i, got.ID, want.ID)
			}
		}
	}
}

func TestHub_CloseStopsDelivery(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe().(*Subscription)

	sub.Close()
	sub.Close() // safe to repeat

	if err := hub.PublishSOSAlert(context.Background(), domain.SOSAlert{ID: "a-1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if _, ok := <-sub.Alerts(); ok {
		t.Error("expected a closed, drained channel after Close")
	}
}

// A subscriber that stops draining falls behind and gets skipped; other
// subscribers keep receiving.
func TestHub_SlowSubscriberDoesNotStallBroadcast(t *testing.T) {
	hub := NewHub()
	stalled := hub.Subscribe().(*Subscription)
	healthy := hub.Subscribe().(*Subscription)

	// Overflow the stalled subscriber's buffer.
	total := subscriberBuffer + 3
	for i := 0; i < total; i++ {
		alert := domain.SOSAlert{ID: fmt.Sprintf("a-%d", i)}
		if err := hub.PublishSOSAlert(context.Background(), alert); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	for i := 0; i < total; i++ {
		got := receiveAlert(t, healthy)
		if want := fmt.Sprintf("a-%d", i); got.ID != want {
			t.Errorf("healthy subscriber alert %d = %s, want %s", i, got.ID, want)
		}
	}

	if got := len(stalled.Alerts()); got != subscriberBuffer {
		t.Errorf("stalled subscriber buffered %d alerts, want %d", got, subscriberBuffer)
	}
}

func TestHub_SubscribeAfterCloseYieldsClosedFeed(t *testing.T) {
	hub := NewHub()
	hub.Close()

	sub := hub.Subscribe()
	if _, ok := <-sub.Alerts(); ok {
		t.Error("expected a closed feed from a closed hub")
	}
}
