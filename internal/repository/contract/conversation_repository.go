package contract

import (
	"context"

	"chatfolders-be/internal/entity"
	"chatfolders-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error
	Upsert(ctx context.Context, conversation *entity.Conversation) error
	// Delete removes one conversation; the id is only unique together
	// with its folder.
	Delete(ctx context.Context, folderId, id string) error
	DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
