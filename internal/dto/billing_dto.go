package dto

import (
	"time"

	"github.com/google/uuid"
)

type PlanResponse struct {
	Id            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Tagline       string        `json:"tagline,omitempty"`
	Description   string        `json:"description,omitempty"`
	Price         float64       `json:"price"`
	Currency      string        `json:"currency"`
	BillingPeriod string        `json:"billing_period"`
	IsMostPopular bool          `json:"is_most_popular"`
	Limits        PlanLimitsDTO `json:"limits"`
	Features      []string      `json:"features"`
}

type PlanLimitsDTO struct {
	MaxFolders                int  `json:"max_folders"`
	MaxConversationsPerFolder int  `json:"max_conversations_per_folder"`
	CloudSyncEnabled          bool `json:"cloud_sync_enabled"`
}

type CheckoutRequest struct {
	PlanId uuid.UUID `json:"plan_id" validate:"required"`
}

// OrderSummaryResponse is the pre-checkout price breakdown.
type OrderSummaryResponse struct {
	PlanName      string  `json:"plan_name"`
	BillingPeriod string  `json:"billing_period"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	Currency      string  `json:"currency"`
}

type CheckoutResponse struct {
	SubscriptionId  uuid.UUID `json:"subscription_id"`
	SnapRedirectUrl string    `json:"snap_redirect_url"`
	SnapToken       string    `json:"snap_token"`
}

type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	// Signature validation fields
	SignatureKey string `json:"signature_key"`
	StatusCode   string `json:"status_code"`
	GrossAmount  string `json:"gross_amount"`
}

type SubscriptionStatusResponse struct {
	Plan               PlanInfo   `json:"plan"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"payment_status"`
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
}

// ValidateSubscriptionResponse is the lightweight check the extension polls
// when no webhook has arrived yet.
type ValidateSubscriptionResponse struct {
	Active   bool   `json:"active"`
	PlanSlug string `json:"plan_slug"`
}
