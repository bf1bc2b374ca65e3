package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SUBSCRIPTION_ACTIVATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers and subscribers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Billing event codes.
const (
	TypeSubscriptionActivated   = "SUBSCRIPTION_ACTIVATED"
	TypeSubscriptionCanceled    = "SUBSCRIPTION_CANCELED"
	TypeSubscriptionReactivated = "SUBSCRIPTION_REACTIVATED"
	TypePaymentFailed           = "PAYMENT_FAILED"
)

// NewSubscriptionEvent builds a billing event for a user and plan.
func NewSubscriptionEvent(eventType string, userId string, planId string, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"user_id": userId,
		"plan_id": planId,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
