package service

import (
	"context"

	"chatfolders-be/internal/pkg/logger"
	"chatfolders-be/internal/repository/memory"
	"chatfolders-be/internal/websocket"
	"chatfolders-be/pkg/events"
	pktNats "chatfolders-be/pkg/nats"

	"github.com/google/uuid"
)

// BillingListenerService drains the billing event stream. Every event
// carries a user id; the listener drops that user's cached plan so the
// next gate check re-reads the DB, then pings their connected devices.
type BillingListenerService struct {
	subscriber *pktNats.Subscriber
	mirror     *memory.SubscriptionMirror
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewBillingListenerService(
	sub *pktNats.Subscriber,
	mirror *memory.SubscriptionMirror,
	hub *websocket.Hub,
	log logger.ILogger,
) *BillingListenerService {
	return &BillingListenerService{
		subscriber: sub,
		mirror:     mirror,
		hub:        hub,
		logger:     log,
	}
}

func (s *BillingListenerService) Start() {
	err := s.subscriber.Subscribe("billing.>", "billing-listener-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("BillingListener", "Failed to subscribe to billing events", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("BillingListener", "Listening for billing events", nil)
}

func (s *BillingListenerService) handleEvent(ctx context.Context, event events.Event) error {
	userIdStr, _ := event.Payload()["user_id"].(string)
	if userIdStr == "" {
		// No correlation id; logged and dropped, never retried.
		s.logger.Warn("BillingListener", "Event without user_id dropped", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		s.logger.Warn("BillingListener", "Event with malformed user_id dropped", map[string]interface{}{"user_id": userIdStr})
		return nil
	}

	s.mirror.Invalidate(userIdStr)
	s.hub.Send(userId, websocket.ChangeMessage{Action: "subscription_changed"})
	return nil
}
