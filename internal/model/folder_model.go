package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Folder struct {
	Id        string         `gorm:"type:varchar(64);primaryKey"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Emoji     string         `gorm:"type:varchar(16)"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Position  int            `gorm:"default:0"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Folder) TableName() string {
	return "folders"
}
