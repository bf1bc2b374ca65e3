package model

import (
	"time"

	"github.com/google/uuid"
)

type UsageMetrics struct {
	UserId            uuid.UUID `gorm:"type:uuid;primaryKey"`
	FolderCount       int       `gorm:"default:0"`
	ConversationCount int       `gorm:"default:0"`
	StorageBytes      int64     `gorm:"default:0"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (UsageMetrics) TableName() string {
	return "usage_metrics"
}
