package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func waitRegistered(t *testing.T, hub *Hub, userId uuid.UUID) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		hub.mu.RLock()
		_, ok := hub.clients[userId]
		hub.mu.RUnlock()
		if ok {
			return
		}
		select {
		case <-deadline:
			t.Fatal("client was never registered")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSendDropsSlowClientWithoutPanic(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	userId := uuid.New()
	// Unbuffered Send with no reader simulates a stalled device.
	slow := &Client{Hub: hub, UserID: userId, Send: make(chan []byte)}
	hub.register <- slow
	waitRegistered(t, hub, userId)

	// Two deliveries: the first drops and unregisters the client, the
	// second must not find it and must not close its channel again.
	hub.Send(userId, ChangeMessage{Action: "folder_changed", FolderId: "f1"})
	hub.Send(userId, ChangeMessage{Action: "folder_changed", FolderId: "f1"})

	deadline := time.After(2 * time.Second)
	for {
		hub.mu.RLock()
		_, registered := hub.clients[userId]
		hub.mu.RUnlock()
		if !registered {
			break
		}
		select {
		case <-deadline:
			t.Fatal("slow client was never unregistered")
		case <-time.After(10 * time.Millisecond):
		}
	}

	// The unregister path closed Send exactly once.
	select {
	case _, open := <-slow.Send:
		if open {
			t.Fatal("expected Send to be closed after unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("Send channel was not closed")
	}
}

func TestSendReachesConnectedClient(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	userId := uuid.New()
	client := &Client{Hub: hub, UserID: userId, Send: make(chan []byte, 4)}
	hub.register <- client
	waitRegistered(t, hub, userId)

	hub.Send(userId, ChangeMessage{Action: "subscription_changed"})

	select {
	case data := <-client.Send:
		if len(data) == 0 {
			t.Fatal("empty payload delivered")
		}
	case <-time.After(time.Second):
		t.Fatal("message never delivered to connected client")
	}
}
