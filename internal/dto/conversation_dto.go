package dto

import (
	"time"
)

// CaptureConversationRequest stores a conversation the extension picked up
// from a supported chat platform into a folder.
type CaptureConversationRequest struct {
	FolderId   string     `json:"folder_id" validate:"required,max=64"`
	Id         string     `json:"id" validate:"required,max=128"`
	Title      string     `json:"title" validate:"required,max=512"`
	Platform   string     `json:"platform" validate:"required"`
	OriginURL  string     `json:"origin_url" validate:"omitempty,url"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

type CaptureConversationResponse struct {
	Id       string `json:"id"`
	FolderId string `json:"folder_id"`
	// AlreadyFiled is true when the conversation id was present in the
	// folder before this request.
	AlreadyFiled bool `json:"already_filed"`
}

type RenameConversationRequest struct {
	FolderId string
	Id       string
	Title    string `json:"title" validate:"required,max=512"`
}

type MoveConversationRequest struct {
	FolderId       string
	Id             string
	TargetFolderId string `json:"target_folder_id" validate:"required,max=64"`
}

// CrossFileConversationRequest files the same conversation into an
// additional folder without removing it from its current one.
type CrossFileConversationRequest struct {
	FolderId       string
	Id             string
	TargetFolderId string `json:"target_folder_id" validate:"required,max=64"`
}

// UnfileConversationRequest removes one folder from a conversation's
// cross-filed list. The home folder is untouched.
type UnfileConversationRequest struct {
	FolderId       string
	Id             string
	TargetFolderId string `json:"target_folder_id" validate:"required,max=64"`
}

type ReorderConversationsRequest struct {
	FolderId        string
	ConversationIds []string `json:"conversation_ids" validate:"required,min=1"`
}

type ConversationResponse struct {
	Id           string     `json:"id"`
	FolderId     string     `json:"folder_id"`
	Title        string     `json:"title"`
	Platform     string     `json:"platform"`
	OriginURL    string     `json:"origin_url,omitempty"`
	Position     int        `json:"position"`
	CapturedAt   time.Time  `json:"captured_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	CrossFiledIn []string   `json:"cross_filed_in,omitempty"`
}
