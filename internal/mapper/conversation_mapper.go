package mapper

import (
	"encoding/json"
	"time"

	"chatfolders-be/internal/entity"
	"chatfolders-be/internal/model"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	var crossFiled []string
	if len(c.CrossFiledIn) > 0 {
		// Malformed stored JSON degrades to an empty list rather than
		// failing the read.
		_ = json.Unmarshal(c.CrossFiledIn, &crossFiled)
	}

	return &entity.Conversation{
		Id:           c.Id,
		FolderId:     c.FolderId,
		UserId:       c.UserId,
		Title:        c.Title,
		Platform:     entity.Platform(c.Platform),
		OriginURL:    c.OriginURL,
		Position:     c.Position,
		CapturedAt:   c.CapturedAt,
		UpdatedAt:    updatedAt,
		CrossFiledIn: crossFiled,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	var crossFiled datatypes.JSON
	if len(c.CrossFiledIn) > 0 {
		raw, _ := json.Marshal(c.CrossFiledIn)
		crossFiled = datatypes.JSON(raw)
	}

	return &model.Conversation{
		Id:           c.Id,
		FolderId:     c.FolderId,
		UserId:       c.UserId,
		Title:        c.Title,
		Platform:     string(c.Platform),
		OriginURL:    c.OriginURL,
		Position:     c.Position,
		CrossFiledIn: crossFiled,
		CapturedAt:   c.CapturedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ConversationMapper) ToEntities(conversations []*model.Conversation) []*entity.Conversation {
	entities := make([]*entity.Conversation, len(conversations))
	for i, c := range conversations {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ConversationMapper) ToModels(conversations []*entity.Conversation) []*model.Conversation {
	models := make([]*model.Conversation, len(conversations))
	for i, c := range conversations {
		models[i] = m.ToModel(c)
	}
	return models
}
