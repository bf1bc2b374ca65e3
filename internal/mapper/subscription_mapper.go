package mapper

import (
	"encoding/json"

	"chatfolders-be/internal/entity"
	"chatfolders-be/internal/model"

	"gorm.io/datatypes"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}

	var features []string
	if len(p.Features) > 0 {
		_ = json.Unmarshal(p.Features, &features)
	}

	return &entity.SubscriptionPlan{
		Id:                        p.Id,
		Name:                      p.Name,
		Slug:                      p.Slug,
		Description:               p.Description,
		Tagline:                   p.Tagline,
		Price:                     p.Price,
		Currency:                  p.Currency,
		TaxRate:                   p.TaxRate,
		BillingPeriod:             entity.BillingPeriod(p.BillingPeriod),
		MaxFolders:                p.MaxFolders,
		MaxConversationsPerFolder: p.MaxConversationsPerFolder,
		CloudSyncEnabled:          p.CloudSyncEnabled,
		IsMostPopular:             p.IsMostPopular,
		IsActive:                  p.IsActive,
		SortOrder:                 p.SortOrder,
		Features:                  features,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}

	var features datatypes.JSON
	if len(p.Features) > 0 {
		raw, _ := json.Marshal(p.Features)
		features = datatypes.JSON(raw)
	}

	return &model.SubscriptionPlan{
		Id:                        p.Id,
		Name:                      p.Name,
		Slug:                      p.Slug,
		Description:               p.Description,
		Tagline:                   p.Tagline,
		Price:                     p.Price,
		Currency:                  p.Currency,
		TaxRate:                   p.TaxRate,
		BillingPeriod:             string(p.BillingPeriod),
		MaxFolders:                p.MaxFolders,
		MaxConversationsPerFolder: p.MaxConversationsPerFolder,
		CloudSyncEnabled:          p.CloudSyncEnabled,
		IsMostPopular:             p.IsMostPopular,
		IsActive:                  p.IsActive,
		SortOrder:                 p.SortOrder,
		Features:                  features,
	}
}

func (m *SubscriptionMapper) PlansToEntities(plans []*model.SubscriptionPlan) []*entity.SubscriptionPlan {
	entities := make([]*entity.SubscriptionPlan, len(plans))
	for i, p := range plans {
		entities[i] = m.PlanToEntity(p)
	}
	return entities
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.UserSubscription) *entity.UserSubscription {
	if s == nil {
		return nil
	}
	return &entity.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                entity.SubscriptionStatus(s.Status),
		PaymentStatus:         entity.PaymentStatus(s.PaymentStatus),
		CurrentPeriodStart:    s.CurrentPeriodStart,
		CurrentPeriodEnd:      s.CurrentPeriodEnd,
		CancelAtPeriodEnd:     s.CancelAtPeriodEnd,
		ExternalCustomerId:    s.ExternalCustomerId,
		ExternalTransactionId: s.ExternalTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.UserSubscription) *model.UserSubscription {
	if s == nil {
		return nil
	}
	return &model.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                string(s.Status),
		PaymentStatus:         string(s.PaymentStatus),
		CurrentPeriodStart:    s.CurrentPeriodStart,
		CurrentPeriodEnd:      s.CurrentPeriodEnd,
		CancelAtPeriodEnd:     s.CancelAtPeriodEnd,
		ExternalCustomerId:    s.ExternalCustomerId,
		ExternalTransactionId: s.ExternalTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionsToEntities(subs []*model.UserSubscription) []*entity.UserSubscription {
	entities := make([]*entity.UserSubscription, len(subs))
	for i, s := range subs {
		entities[i] = m.SubscriptionToEntity(s)
	}
	return entities
}
