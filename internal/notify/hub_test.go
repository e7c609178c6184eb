package notify

import (
	"testing"
	"time"
)

func TestHubDeliversToSubscribers(t *testing.T) {
	hub := NewHub(4)

	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(Event{Kind: VisitorUpserted, SessionID: "s1", PagePath: "/jobs"})

	select {
	case event := <-ch:
		if event.Kind != VisitorUpserted || event.SessionID != "s1" {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("expected an event")
	}
}

func TestHubSkipsFullSubscribers(t *testing.T) {
	hub := NewHub(1)

	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(Event{Kind: PageViewed})
	hub.Publish(Event{Kind: PageViewed}) // buffer full, must not block

	if got := len(ch); got != 1 {
		t.Fatalf("expected exactly 1 buffered event, got %d", got)
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub(1)

	ch, cancel := hub.Subscribe()
	cancel()
	cancel() // idempotent

	if hub.SubscriberCount() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", hub.SubscriberCount())
	}
	if _, open := <-ch; open {
		t.Fatal("channel should be closed after unsubscribe")
	}
}
