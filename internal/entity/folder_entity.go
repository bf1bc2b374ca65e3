package entity

import (
	"time"

	"github.com/google/uuid"
)

// Folder identifiers are client-generated strings (time-based on the
// extension side, uuid strings when created through the REST API) so
// that folders created offline keep their identity across sync.
type Folder struct {
	Id        string
	Name      string
	Emoji     string
	UserId    uuid.UUID
	Position  int
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool

	// Conversations in display order. Loaded on demand.
	Conversations []*Conversation
}
