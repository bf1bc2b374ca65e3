package entity

import (
	"time"

	"github.com/google/uuid"
)

// UsageMetrics is a per-user usage snapshot, recomputed after every
// mutating folder/conversation operation. Created on first access,
// never deleted.
type UsageMetrics struct {
	UserId            uuid.UUID
	FolderCount       int
	ConversationCount int
	StorageBytes      int64
	UpdatedAt         time.Time
}
