package ws

import (
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not reached in time")
}

func TestHub_BroadcastReachesOnlyTheSubscribedEmail(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	owner := &Client{email: "owner@x.com", send: make(chan []byte, 4)}
	other := &Client{email: "other@x.com", send: make(chan []byte, 4)}
	h.Register(owner)
	h.Register(other)
	waitFor(t, func() bool { return h.ClientCount() == 2 })

	h.Broadcast("owner@x.com", []byte(`{"type":"bid_placed"}`))

	select {
	case msg := <-owner.send:
		if string(msg) != `{"type":"bid_placed"}` {
			t.Fatalf("unexpected payload %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("owner never received the event")
	}

	select {
	case msg := <-other.send:
		t.Fatalf("event leaked to another email: %q", msg)
	default:
	}
}

func TestHub_SlowConsumerIsDroppedWithoutStallingRun(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	slow := &Client{email: "owner@x.com", send: make(chan []byte, 1)}
	h.Register(slow)
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	h.Broadcast("owner@x.com", []byte("first"))
	h.Broadcast("owner@x.com", []byte("second"))

	waitFor(t, func() bool { return h.ClientCount() == 0 })

	if msg := <-slow.send; string(msg) != "first" {
		t.Fatalf("buffered message lost, got %q", msg)
	}
	if _, ok := <-slow.send; ok {
		t.Fatalf("dropped client's send channel must be closed")
	}
}
