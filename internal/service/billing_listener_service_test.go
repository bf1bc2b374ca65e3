package service

import (
	"context"
	"testing"

	"chatfolders-be/internal/repository/memory"
	"chatfolders-be/internal/websocket"
	"chatfolders-be/pkg/events"

	"github.com/google/uuid"
)

func TestBillingListenerInvalidatesMirror(t *testing.T) {
	mirror := memory.NewSubscriptionMirror()
	userId := uuid.New()
	mirror.Set(userId.String(), &memory.MirrorEntry{})

	hub := websocket.NewHub(nil, quietLogger{})
	svc := NewBillingListenerService(nil, mirror, hub, quietLogger{})

	evt := events.NewSubscriptionEvent(events.TypeSubscriptionActivated, userId.String(), uuid.NewString(), nil)
	if err := svc.handleEvent(context.Background(), evt); err != nil {
		t.Fatalf("handleEvent: %v", err)
	}

	if _, ok := mirror.Get(userId.String()); ok {
		t.Error("cached plan survived a billing event")
	}
}

func TestBillingListenerDropsEventsWithoutCorrelation(t *testing.T) {
	mirror := memory.NewSubscriptionMirror()
	hub := websocket.NewHub(nil, quietLogger{})
	svc := NewBillingListenerService(nil, mirror, hub, quietLogger{})

	tests := []struct {
		name string
		data map[string]interface{}
	}{
		{"missing user_id", map[string]interface{}{"plan_id": uuid.NewString()}},
		{"malformed user_id", map[string]interface{}{"user_id": "not-a-uuid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt := events.BaseEvent{Type: events.TypePaymentFailed, Data: tt.data}
			if err := svc.handleEvent(context.Background(), evt); err != nil {
				t.Errorf("expected drop, got error: %v", err)
			}
		})
	}
}
