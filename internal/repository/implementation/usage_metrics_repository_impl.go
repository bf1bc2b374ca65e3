package implementation

import (
	"context"
	"errors"

	"chatfolders-be/internal/entity"
	"chatfolders-be/internal/mapper"
	"chatfolders-be/internal/model"
	"chatfolders-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageMetricsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UsageMapper
}

func NewUsageMetricsRepository(db *gorm.DB) contract.UsageMetricsRepository {
	return &UsageMetricsRepositoryImpl{
		db:     db,
		mapper: mapper.NewUsageMapper(),
	}
}

func (r *UsageMetricsRepositoryImpl) Upsert(ctx context.Context, metrics *entity.UsageMetrics) error {
	m := r.mapper.ToModel(metrics)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(m).Error
	if err != nil {
		return err
	}
	*metrics = *r.mapper.ToEntity(m)
	return nil
}

func (r *UsageMetricsRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UsageMetrics, error) {
	var m model.UsageMetrics
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UsageMetricsRepositoryImpl) DeleteByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.UsageMetrics{}).Error
}
