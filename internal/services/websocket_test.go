package services

import (
	"sync"
	"testing"
	"time"
)

func newTestClient(id uint, role string, buffer int) *Client {
	return &Client{ID: id, UserRole: role, Send: make(chan []byte, buffer)}
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.GetConnectedClients() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", want, hub.GetConnectedClients())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHubDropsStalledClientOnTargetedSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	live := newTestClient(1, "admin", 8)
	stalled := newTestClient(1, "admin", 0) // never read, full immediately
	hub.register <- live
	hub.register <- stalled
	waitForClients(t, hub, 2)

	hub.BroadcastToUser(1, []byte("hello"))

	select {
	case msg := <-live.Send:
		if string(msg) != "hello" {
			t.Errorf("unexpected message %q", msg)
		}
	default:
		t.Error("live client did not receive the message")
	}

	// The stalled client must be removed, not left closed in the map.
	waitForClients(t, hub, 1)
	if _, open := <-stalled.Send; open {
		t.Error("expected stalled client's channel to be closed")
	}
}

func TestHubConcurrentTargetedBroadcasts(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	for i := 0; i < 4; i++ {
		client := newTestClient(uint(i), "admin", 64)
		go func() { // drain like a writePump would
			for range client.Send {
			}
		}()
		hub.register <- client
	}
	waitForClients(t, hub, 4)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 16; j++ {
				if n%2 == 0 {
					hub.BroadcastToRole("admin", []byte("role"))
				} else {
					hub.BroadcastToUser(uint(n%4), []byte("user"))
				}
			}
		}(i)
	}
	wg.Wait()

	if got := hub.GetConnectedClients(); got != 4 {
		t.Errorf("expected 4 clients after broadcasts, got %d", got)
	}
}
