package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type PaymentStatus string
type BillingPeriod string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusUnpaid   SubscriptionStatus = "unpaid"
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"

	BillingPeriodMonthly BillingPeriod = "monthly"
	BillingPeriodYearly  BillingPeriod = "yearly"
)

type SubscriptionPlan struct {
	Id            uuid.UUID
	Name          string
	Slug          string
	Description   string
	Tagline       string
	Price         float64
	Currency      string
	TaxRate       float64
	BillingPeriod BillingPeriod
	// Storage limits, -1 = unlimited
	MaxFolders                int
	MaxConversationsPerFolder int
	// Entitlements
	CloudSyncEnabled bool
	// Display settings
	IsMostPopular bool
	IsActive      bool
	SortOrder     int

	// Display-only feature strings shown in the pricing modal.
	Features []string
}

type UserSubscription struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	PlanId             uuid.UUID
	Status             SubscriptionStatus
	PaymentStatus      PaymentStatus
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool
	// Payment-processor correlation ids
	ExternalCustomerId    *string
	ExternalTransactionId *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
