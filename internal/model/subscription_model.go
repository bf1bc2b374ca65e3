package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionPlan struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Slug          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description   string    `gorm:"type:text"`
	Tagline       string    `gorm:"type:text"`
	Price         float64   `gorm:"type:decimal(10,2);not null"`
	Currency      string    `gorm:"type:varchar(8);default:'USD'"`
	TaxRate       float64   `gorm:"type:decimal(5,4);default:0"`
	BillingPeriod string    `gorm:"type:varchar(16);not null"`
	// Storage limits, -1 = unlimited
	MaxFolders                int `gorm:"default:3"`
	MaxConversationsPerFolder int `gorm:"default:10"`
	// Entitlements
	CloudSyncEnabled bool `gorm:"default:false"`
	// Display settings
	IsMostPopular bool           `gorm:"default:false"`
	IsActive      bool           `gorm:"default:true"`
	SortOrder     int            `gorm:"default:0"`
	Features      datatypes.JSON `gorm:"type:jsonb"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type UserSubscription struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId                uuid.UUID `gorm:"type:uuid;not null;index"`
	Status                string    `gorm:"type:varchar(50);not null"`
	PaymentStatus         string    `gorm:"type:varchar(50);not null"`
	CurrentPeriodStart    time.Time `gorm:"not null"`
	CurrentPeriodEnd      time.Time `gorm:"not null"`
	CancelAtPeriodEnd     bool      `gorm:"default:false"`
	ExternalCustomerId    *string   `gorm:"type:varchar(255)"`
	ExternalTransactionId *string   `gorm:"type:varchar(255)"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}
