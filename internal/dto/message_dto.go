package dto

import (
	"github.com/google/uuid"
)

// PublishFolderChangedMessage is the in-process event emitted after any
// mutating folder or conversation operation. The consumer fans it out to
// the user's connected devices and recomputes usage metrics.
type PublishFolderChangedMessage struct {
	UserId   uuid.UUID `json:"user_id"`
	FolderId string    `json:"folder_id"`
	Action   string    `json:"action"`
}

const (
	FolderActionCreated             = "created"
	FolderActionUpdated             = "updated"
	FolderActionDeleted             = "deleted"
	FolderActionReordered           = "reordered"
	FolderActionConversationChanged = "conversation_changed"
)
