package contract

import (
	"context"

	"chatfolders-be/internal/entity"

	"github.com/google/uuid"
)

type UsageMetricsRepository interface {
	// Upsert writes the metrics row, creating it on first access.
	Upsert(ctx context.Context, metrics *entity.UsageMetrics) error
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UsageMetrics, error)
	DeleteByUserId(ctx context.Context, userId uuid.UUID) error
}
