package events

import (
	"testing"

	"go.uber.org/zap"
)

func TestBroadcastFanout(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	a := r.Subscribe()
	b := r.Subscribe()

	r.Broadcast(map[string]string{"k": "v"})

	pa := <-a.C
	pb := <-b.C
	if string(pa) != string(pb) {
		t.Fatalf("expected identical payloads, got %s vs %s", pa, pb)
	}
	if string(pa) != `{"k":"v"}` {
		t.Fatalf("unexpected payload %s", pa)
	}
}

func TestUnsubscribedReceivesNothing(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	a := r.Subscribe()
	b := r.Subscribe()
	r.Unsubscribe(a.ID)

	r.Broadcast("x")

	if _, ok := <-a.C; ok {
		t.Fatalf("expected unsubscribed channel to be closed without payloads")
	}
	if payload, ok := <-b.C; !ok || string(payload) != `"x"` {
		t.Fatalf("expected remaining subscriber to receive payload, got %s ok=%v", payload, ok)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 subscriber left, got %d", r.Len())
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	a := r.Subscribe()
	r.Unsubscribe(a.ID)
	r.Unsubscribe(a.ID)
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
}

func TestSlowSubscriberDoesNotBlockOthers(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	slow := r.Subscribe()
	fast := r.Subscribe()

	total := sendBuffer + 3
	for i := 0; i < total; i++ {
		r.Broadcast(i)
		// fast subscriber keeps up
		if _, ok := <-fast.C; !ok {
			t.Fatalf("expected fast subscriber to stay registered at broadcast %d", i)
		}
	}

	// slow never drained: its buffer filled and the registry dropped it
	if r.Len() != 1 {
		t.Fatalf("expected slow subscriber to be dropped, registry has %d", r.Len())
	}
	received := 0
	for range slow.C {
		received++
	}
	if received != sendBuffer {
		t.Fatalf("expected slow subscriber to hold %d buffered payloads, got %d", sendBuffer, received)
	}
}
