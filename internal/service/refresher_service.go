package service

import (
	"context"
	"sync/atomic"
	"time"

	"chatfolders-be/internal/entity"
	"chatfolders-be/internal/pkg/logger"
	"chatfolders-be/internal/repository/memory"
	"chatfolders-be/internal/repository/specification"
	"chatfolders-be/internal/repository/unitofwork"
)

type IRefresherService interface {
	Start(ctx context.Context)
}

// refresherService periodically re-resolves subscription state for every
// user the mirror knows about. It covers the window where a payment
// settled but the webhook never arrived.
type refresherService struct {
	uowFactory unitofwork.RepositoryFactory
	mirror     *memory.SubscriptionMirror
	interval   time.Duration
	logger     logger.ILogger

	// Guards against overlapping passes when one runs long.
	running int32
}

func NewRefresherService(
	uowFactory unitofwork.RepositoryFactory,
	mirror *memory.SubscriptionMirror,
	interval time.Duration,
	log logger.ILogger,
) IRefresherService {
	return &refresherService{
		uowFactory: uowFactory,
		mirror:     mirror,
		interval:   interval,
		logger:     log,
	}
}

func (s *refresherService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.refreshOnce(ctx)
			}
		}
	}()
}

func (s *refresherService) refreshOnce(ctx context.Context) {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		s.logger.Warn("Refresher", "Previous pass still running, skipping", nil)
		return
	}
	defer atomic.StoreInt32(&s.running, 0)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Pending rows are the ones a lost webhook would leave behind
	subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.Filter("payment_status", string(entity.PaymentStatusPending)),
	)
	if err != nil {
		s.logger.Error("Refresher", "Failed to list pending subscriptions", map[string]interface{}{"error": err.Error()})
		return
	}

	refreshed := 0
	for _, sub := range subs {
		// Stale pending rows past their period cannot activate anymore
		if sub.CurrentPeriodEnd.Before(time.Now()) {
			continue
		}
		s.mirror.Invalidate(sub.UserId.String())
		refreshed++
	}

	if refreshed > 0 {
		s.logger.Info("Refresher", "Invalidated mirror entries for pending subscriptions", map[string]interface{}{"count": refreshed})
	}
}
