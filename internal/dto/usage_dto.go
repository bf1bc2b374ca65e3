// DTOs for usage limits and status checking
package dto

import (
	"github.com/google/uuid"
)

// UsageLimit represents a single limit status
type UsageLimit struct {
	Used   int  `json:"used"`
	Limit  int  `json:"limit"` // -1 = unlimited
	CanUse bool `json:"can_use"`
}

// StorageLimits for cumulative resources (folders, conversations)
type StorageLimits struct {
	Folders       UsageLimit `json:"folders"`
	Conversations UsageLimit `json:"conversations"` // Per folder, worst case across folders
}

// UsageStatusResponse is returned by GET /api/user/usage-status
type UsageStatusResponse struct {
	Plan             PlanInfo      `json:"plan"`
	Storage          StorageLimits `json:"storage"`
	StorageBytes     int64         `json:"storage_bytes"`
	UpgradeAvailable bool          `json:"upgrade_available"`
}

type PlanInfo struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// LimitType constants for error handling
const (
	LimitTypeFolders       = "folders"
	LimitTypeConversations = "conversations"
)
