package service

import (
	"context"
	"encoding/json"
	"time"

	"chatfolders-be/internal/entity"
	"chatfolders-be/internal/repository/specification"
	"chatfolders-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUsageService interface {
	// Recompute rebuilds the user's usage snapshot from the stored rows.
	Recompute(ctx context.Context, userId uuid.UUID) (*entity.UsageMetrics, error)
	Get(ctx context.Context, userId uuid.UUID) (*entity.UsageMetrics, error)
}

type usageService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUsageService(uowFactory unitofwork.RepositoryFactory) IUsageService {
	return &usageService{
		uowFactory: uowFactory,
	}
}

func (s *usageService) Recompute(ctx context.Context, userId uuid.UUID) (*entity.UsageMetrics, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folderCount, err := uow.FolderRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	conversations, err := uow.ConversationRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	// StorageBytes approximates the serialized size of what the user has
	// filed, which is what the extension shows on the usage screen.
	var storageBytes int64
	for _, conv := range conversations {
		if data, err := json.Marshal(conv); err == nil {
			storageBytes += int64(len(data))
		}
	}

	metrics := &entity.UsageMetrics{
		UserId:            userId,
		FolderCount:       int(folderCount),
		ConversationCount: len(conversations),
		StorageBytes:      storageBytes,
		UpdatedAt:         time.Now(),
	}

	if err := uow.UsageMetricsRepository().Upsert(ctx, metrics); err != nil {
		return nil, err
	}

	return metrics, nil
}

func (s *usageService) Get(ctx context.Context, userId uuid.UUID) (*entity.UsageMetrics, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	metrics, err := uow.UsageMetricsRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		// First access: build the row on the fly
		return s.Recompute(ctx, userId)
	}
	return metrics, nil
}
