// Service for plan management and usage limit checking
package service

import (
	"context"
	"time"

	"chatfolders-be/internal/dto"
	"chatfolders-be/internal/entity"
	"chatfolders-be/internal/repository/memory"
	"chatfolders-be/internal/repository/specification"
	"chatfolders-be/internal/repository/unitofwork"
	"chatfolders-be/pkg/limits"

	"github.com/google/uuid"
)

type PlanService interface {
	// Public
	GetAllActivePlans(ctx context.Context) ([]*dto.PlanResponse, error)

	// User
	GetUserPlan(ctx context.Context, userId uuid.UUID) (*entity.SubscriptionPlan, error)
	GetUserUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error)
	CheckCanCreateFolder(ctx context.Context, userId uuid.UUID) error
	CheckCanAddConversation(ctx context.Context, userId uuid.UUID, folderId string) error
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	mirror     *memory.SubscriptionMirror
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory, mirror *memory.SubscriptionMirror) PlanService {
	return &planService{
		uowFactory: uowFactory,
		mirror:     mirror,
	}
}

// GetAllActivePlans returns all active plans for the pricing modal
func (s *planService) GetAllActivePlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx)
	if err != nil {
		return nil, err
	}

	var result []*dto.PlanResponse
	for _, plan := range plans {
		if !plan.IsActive {
			continue
		}

		result = append(result, &dto.PlanResponse{
			Id:            plan.Id,
			Name:          plan.Name,
			Slug:          plan.Slug,
			Tagline:       plan.Tagline,
			Description:   plan.Description,
			Price:         plan.Price,
			Currency:      plan.Currency,
			BillingPeriod: string(plan.BillingPeriod),
			IsMostPopular: plan.IsMostPopular,
			Limits: dto.PlanLimitsDTO{
				MaxFolders:                plan.MaxFolders,
				MaxConversationsPerFolder: plan.MaxConversationsPerFolder,
				CloudSyncEnabled:          plan.CloudSyncEnabled,
			},
			Features: plan.Features,
		})
	}

	return result, nil
}

// GetUserUsageStatus returns current usage vs limits for a user
func (s *planService) GetUserUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.getUserPlan(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	folderCount, err := uow.FolderRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	// Worst case across folders decides whether the conversation limit
	// shows as exhausted.
	maxInFolder, err := s.maxConversationsInOneFolder(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	var storageBytes int64
	if metrics, err := uow.UsageMetricsRepository().FindByUserId(ctx, userId); err == nil && metrics != nil {
		storageBytes = metrics.StorageBytes
	}

	response := &dto.UsageStatusResponse{
		Plan: dto.PlanInfo{
			Id:   plan.Id,
			Name: plan.Name,
			Slug: plan.Slug,
		},
		Storage: dto.StorageLimits{
			Folders: dto.UsageLimit{
				Used:   int(folderCount),
				Limit:  plan.MaxFolders,
				CanUse: limits.CanCreateFolder(plan.MaxFolders, int(folderCount)),
			},
			Conversations: dto.UsageLimit{
				Used:   maxInFolder,
				Limit:  plan.MaxConversationsPerFolder,
				CanUse: limits.CanAddConversation(plan.MaxConversationsPerFolder, maxInFolder),
			},
		},
		StorageBytes:     storageBytes,
		UpgradeAvailable: plan.Slug == "free",
	}

	return response, nil
}

// CheckCanCreateFolder checks if user can create a new folder
func (s *planService) CheckCanCreateFolder(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.getUserPlan(ctx, uow, userId)
	if err != nil {
		return err
	}

	if plan.MaxFolders == limits.Unlimited {
		return nil
	}

	count, err := uow.FolderRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}

	if !limits.CanCreateFolder(plan.MaxFolders, int(count)) {
		return &dto.LimitExceededError{
			LimitType: dto.LimitTypeFolders,
			Limit:     plan.MaxFolders,
			Used:      int(count),
		}
	}

	return nil
}

// CheckCanAddConversation checks if user can file one more conversation
// into the given folder
func (s *planService) CheckCanAddConversation(ctx context.Context, userId uuid.UUID, folderId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.getUserPlan(ctx, uow, userId)
	if err != nil {
		return err
	}

	if plan.MaxConversationsPerFolder == limits.Unlimited {
		return nil
	}

	count, err := uow.ConversationRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByFolderID{FolderID: folderId},
	)
	if err != nil {
		return err
	}

	if !limits.CanAddConversation(plan.MaxConversationsPerFolder, int(count)) {
		return &dto.LimitExceededError{
			LimitType: dto.LimitTypeConversations,
			Limit:     plan.MaxConversationsPerFolder,
			Used:      int(count),
		}
	}

	return nil
}

func (s *planService) GetUserPlan(ctx context.Context, userId uuid.UUID) (*entity.SubscriptionPlan, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.getUserPlan(ctx, uow, userId)
}

// getUserPlan gets the user's current plan or returns default free plan
func (s *planService) getUserPlan(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.SubscriptionPlan, error) {
	// Fast path: the billing mirror holds the resolved plan
	if entry, found := s.mirror.Get(userId.String()); found && entry.Plan != nil {
		return entry.Plan, nil
	}

	subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var activeSub *entity.UserSubscription
	for _, sub := range subs {
		// Priority 1: Active
		if sub.Status == entity.SubscriptionStatusActive && sub.CurrentPeriodEnd.After(time.Now()) {
			activeSub = sub
			break
		}
		// Priority 2: Canceled but still within billing period (access retained)
		if sub.Status == entity.SubscriptionStatusCanceled && sub.CurrentPeriodEnd.After(time.Now()) {
			activeSub = sub
			break
		}
		// Priority 3: Just paid (fallback)
		if sub.PaymentStatus == entity.PaymentStatusPaid && sub.CurrentPeriodEnd.After(time.Now()) {
			activeSub = sub
			break
		}
	}

	if activeSub != nil {
		plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: activeSub.PlanId})
		if err != nil {
			return nil, err
		}
		if plan != nil {
			s.mirror.Set(userId.String(), &memory.MirrorEntry{
				Plan:         plan,
				Subscription: activeSub,
				FetchedAt:    time.Now(),
			})
			return plan, nil
		}
	}

	return defaultFreePlan(), nil
}

// defaultFreePlan is the fallback when the user has no usable subscription
func defaultFreePlan() *entity.SubscriptionPlan {
	return &entity.SubscriptionPlan{
		Name:                      "Free Plan",
		Slug:                      "free",
		MaxFolders:                3,
		MaxConversationsPerFolder: 10,
		CloudSyncEnabled:          false,
	}
}

func (s *planService) maxConversationsInOneFolder(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (int, error) {
	folders, err := uow.FolderRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return 0, err
	}

	max := 0
	for _, folder := range folders {
		count, err := uow.ConversationRepository().Count(ctx,
			specification.ByFolderID{FolderID: folder.Id},
		)
		if err != nil {
			return 0, err
		}
		if int(count) > max {
			max = int(count)
		}
	}
	return max, nil
}
