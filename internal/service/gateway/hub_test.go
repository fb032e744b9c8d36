package gateway

import (
	"testing"
	"time"
)

func waitForClients(t *testing.T, hub *Hub, room string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.lock.RLock()
		n := len(hub.rooms[room])
		hub.lock.RUnlock()
		if n == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("room %s never reached %d clients", room, want)
}

func TestHubBroadcastIsRoomScoped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	waiter := &Client{hub: hub, send: make(chan []byte, 1), room: "waiters"}
	kitchen := &Client{hub: hub, send: make(chan []byte, 1), room: "kitchen"}
	hub.register <- waiter
	hub.register <- kitchen
	waitForClients(t, hub, "waiters", 1)
	waitForClients(t, hub, "kitchen", 1)

	hub.Broadcast("waiters", []byte("hello"))

	select {
	case msg := <-waiter.send:
		if string(msg) != "hello" {
			t.Fatalf("message = %q", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter never received broadcast")
	}
	select {
	case msg := <-kitchen.send:
		t.Fatalf("kitchen must not receive waiters broadcast, got %q", msg)
	default:
	}
}

func TestHubDropsMessageWhenClientBufferFull(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 1), room: "kitchen"}
	hub.register <- client
	waitForClients(t, hub, "kitchen", 1)

	hub.Broadcast("kitchen", []byte("one"))
	hub.Broadcast("kitchen", []byte("two")) // 缓冲满，静默丢弃

	if msg := <-client.send; string(msg) != "one" {
		t.Fatalf("first message = %q, want one", msg)
	}
	select {
	case msg := <-client.send:
		t.Fatalf("unexpected second message %q", msg)
	default:
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 1), room: "table:1"}
	hub.register <- client
	waitForClients(t, hub, "table:1", 1)

	hub.unregister <- client
	waitForClients(t, hub, "table:1", 0)

	if _, open := <-client.send; open {
		t.Fatal("send channel should be closed after unregister")
	}

	// 空房间的广播是无害的
	hub.Broadcast("table:1", []byte("late"))
}
