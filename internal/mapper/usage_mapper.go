package mapper

import (
	"chatfolders-be/internal/entity"
	"chatfolders-be/internal/model"
)

type UsageMapper struct{}

func NewUsageMapper() *UsageMapper {
	return &UsageMapper{}
}

func (m *UsageMapper) ToEntity(u *model.UsageMetrics) *entity.UsageMetrics {
	if u == nil {
		return nil
	}
	return &entity.UsageMetrics{
		UserId:            u.UserId,
		FolderCount:       u.FolderCount,
		ConversationCount: u.ConversationCount,
		StorageBytes:      u.StorageBytes,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (m *UsageMapper) ToModel(u *entity.UsageMetrics) *model.UsageMetrics {
	if u == nil {
		return nil
	}
	return &model.UsageMetrics{
		UserId:            u.UserId,
		FolderCount:       u.FolderCount,
		ConversationCount: u.ConversationCount,
		StorageBytes:      u.StorageBytes,
		UpdatedAt:         u.UpdatedAt,
	}
}
