package unitofwork

import (
	"context"

	"chatfolders-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	FolderRepository() contract.FolderRepository
	ConversationRepository() contract.ConversationRepository
	SubscriptionRepository() contract.SubscriptionRepository
	UsageMetricsRepository() contract.UsageMetricsRepository
}
