package entity

import (
	"time"

	"github.com/google/uuid"
)

type Platform string

const (
	PlatformChatGPT    Platform = "chatgpt"
	PlatformPerplexity Platform = "perplexity"
	PlatformDeepSeek   Platform = "deepseek"
	PlatformGemini     Platform = "gemini"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformChatGPT, PlatformPerplexity, PlatformDeepSeek, PlatformGemini:
		return true
	}
	return false
}

// Conversation is a reference to one chat session on a supported AI
// platform. The identifier is the platform's own conversation id and is
// unique within a folder. Immutable once captured except for Title.
type Conversation struct {
	Id         string
	FolderId   string
	UserId     uuid.UUID
	Title      string
	Platform   Platform
	OriginURL  string
	Position   int
	CapturedAt time.Time
	UpdatedAt  *time.Time

	// Folders this conversation is cross-filed under, beyond its home
	// folder. Optional.
	CrossFiledIn []string
}
