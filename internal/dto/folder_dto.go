package dto

import (
	"time"
)

type CreateFolderRequest struct {
	Id    string `json:"id" validate:"required,max=64"`
	Name  string `json:"name" validate:"required,max=255"`
	Emoji string `json:"emoji" validate:"max=16"`
}

type CreateFolderResponse struct {
	Id string `json:"id"`
}

type UpdateFolderRequest struct {
	Id    string
	Name  string `json:"name" validate:"required,max=255"`
	Emoji string `json:"emoji" validate:"max=16"`
}

type UpdateFolderResponse struct {
	Id string `json:"id"`
}

type ReorderFoldersRequest struct {
	FolderIds []string `json:"folder_ids" validate:"required,min=1"`
}

type FolderResponse struct {
	Id            string                 `json:"id"`
	Name          string                 `json:"name"`
	Emoji         string                 `json:"emoji,omitempty"`
	Position      int                    `json:"position"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     *time.Time             `json:"updated_at,omitempty"`
	Conversations []ConversationResponse `json:"conversations"`
}

type FolderListResponse struct {
	Folders []FolderResponse `json:"folders"`
}
