package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Conversation id is the platform conversation id; unique per folder,
// hence the composite primary key.
type Conversation struct {
	Id           string         `gorm:"type:varchar(128);primaryKey"`
	FolderId     string         `gorm:"type:varchar(64);primaryKey;index"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title        string         `gorm:"type:varchar(512);not null"`
	Platform     string         `gorm:"type:varchar(32);not null"`
	OriginURL    string         `gorm:"type:text"`
	Position     int            `gorm:"default:0"`
	CrossFiledIn datatypes.JSON `gorm:"type:jsonb"`
	CapturedAt   time.Time      `gorm:"not null"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}
