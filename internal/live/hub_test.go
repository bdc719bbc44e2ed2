package live

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHubRegisterAndUnregister(t *testing.T) {
	hub := newTestHub()
	c := NewClient("c1", "g1", nil)

	hub.Register(c)
	if got := hub.Subscribers("g1"); got != 1 {
		t.Fatalf("expected 1 subscriber, got %d", got)
	}

	hub.Unregister("g1", "c1")
	if got := hub.Subscribers("g1"); got != 0 {
		t.Fatalf("expected 0 subscribers, got %d", got)
	}
	if _, ok := <-c.Send; ok {
		t.Fatalf("expected send channel closed on unregister")
	}

	// Unregistering the same client again must be harmless.
	hub.Unregister("g1", "c1")
	hub.Unregister("missing", "c1")
}

func TestHubBroadcastReachesOnlyMatchingGame(t *testing.T) {
	hub := newTestHub()
	watching := NewClient("c1", "g1", nil)
	other := NewClient("c2", "g2", nil)
	hub.Register(watching)
	hub.Register(other)

	delivered := hub.Broadcast("g1", map[string]string{"hello": "world"})
	if delivered != 1 {
		t.Fatalf("expected 1 delivery, got %d", delivered)
	}

	select {
	case msg := <-watching.Send:
		var got map[string]string
		if err := json.Unmarshal(msg, &got); err != nil {
			t.Fatalf("payload not JSON: %v", err)
		}
		if got["hello"] != "world" {
			t.Fatalf("unexpected payload: %v", got)
		}
	default:
		t.Fatalf("watching client got no message")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("other game's client received %q", msg)
	default:
	}
}

func TestHubBroadcastSkipsSlowClients(t *testing.T) {
	hub := newTestHub()
	slow := NewClient("c1", "g1", nil)
	hub.Register(slow)

	for i := 0; i < sendBuffer; i++ {
		if got := hub.Broadcast("g1", i); got != 1 {
			t.Fatalf("broadcast %d: expected delivery, got %d", i, got)
		}
	}

	// Channel is full now; the next update is dropped, not blocked on.
	if got := hub.Broadcast("g1", "overflow"); got != 0 {
		t.Fatalf("expected slow client to be skipped, got %d deliveries", got)
	}
}

func TestHubBroadcastUnmarshalablePayload(t *testing.T) {
	hub := newTestHub()
	hub.Register(NewClient("c1", "g1", nil))

	if got := hub.Broadcast("g1", func() {}); got != 0 {
		t.Fatalf("expected 0 deliveries for unencodable payload, got %d", got)
	}
}
