package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	AvatarURL    string
	Provider     string // "local" or "google"
	Status       string // "active" | "suspended"
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
