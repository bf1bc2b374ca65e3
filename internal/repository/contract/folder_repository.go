package contract

import (
	"context"

	"chatfolders-be/internal/entity"
	"chatfolders-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FolderRepository interface {
	Create(ctx context.Context, folder *entity.Folder) error
	Update(ctx context.Context, folder *entity.Folder) error
	// Upsert writes the folder whether or not it already exists. Used by
	// the sync write-back, where client-generated ids may collide with
	// server rows.
	Upsert(ctx context.Context, folder *entity.Folder) error
	Delete(ctx context.Context, id string) error
	DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Folder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Folder, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
