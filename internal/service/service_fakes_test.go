package service

import (
	"context"

	"chatfolders-be/internal/entity"
	"chatfolders-be/internal/repository/contract"
	"chatfolders-be/internal/repository/specification"
	"chatfolders-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory stand-ins for the gorm-backed repositories. Each fake holds
// at most one row and ignores the query specifications; the services
// under test only ever look one row up.

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUow struct {
	conversations *fakeConversationRepo
	subscriptions *fakeSubscriptionRepo
	folders       *fakeFolderRepo
	users         *fakeUserRepo
	usage         *fakeUsageRepo

	committed bool
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error {
	u.committed = true
	return nil
}
func (u *fakeUow) Rollback() error { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                 { return u.users }
func (u *fakeUow) FolderRepository() contract.FolderRepository             { return u.folders }
func (u *fakeUow) UsageMetricsRepository() contract.UsageMetricsRepository { return u.usage }

func (u *fakeUow) ConversationRepository() contract.ConversationRepository { return u.conversations }
func (u *fakeUow) SubscriptionRepository() contract.SubscriptionRepository { return u.subscriptions }

type fakeConversationRepo struct {
	row        *entity.Conversation
	updated    *entity.Conversation
	deletedAll bool
}

func (r *fakeConversationRepo) Create(ctx context.Context, c *entity.Conversation) error { return nil }
func (r *fakeConversationRepo) Update(ctx context.Context, c *entity.Conversation) error {
	r.updated = c
	return nil
}
func (r *fakeConversationRepo) Upsert(ctx context.Context, c *entity.Conversation) error { return nil }
func (r *fakeConversationRepo) Delete(ctx context.Context, folderId, id string) error    { return nil }
func (r *fakeConversationRepo) DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error {
	r.deletedAll = true
	return nil
}
func (r *fakeConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	return r.row, nil
}
func (r *fakeConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	return nil, nil
}
func (r *fakeConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeSubscriptionRepo struct {
	plan       *entity.SubscriptionPlan
	deletedAll bool
}

func (r *fakeSubscriptionRepo) CreatePlan(ctx context.Context, p *entity.SubscriptionPlan) error {
	return nil
}
func (r *fakeSubscriptionRepo) UpdatePlan(ctx context.Context, p *entity.SubscriptionPlan) error {
	return nil
}
func (r *fakeSubscriptionRepo) DeletePlan(ctx context.Context, id uuid.UUID) error { return nil }
func (r *fakeSubscriptionRepo) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	return r.plan, nil
}
func (r *fakeSubscriptionRepo) FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	return nil, nil
}
func (r *fakeSubscriptionRepo) CreateSubscription(ctx context.Context, s *entity.UserSubscription) error {
	return nil
}
func (r *fakeSubscriptionRepo) UpdateSubscription(ctx context.Context, s *entity.UserSubscription) error {
	return nil
}
func (r *fakeSubscriptionRepo) DeleteAllSubscriptionsByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error {
	r.deletedAll = true
	return nil
}
func (r *fakeSubscriptionRepo) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	return nil, nil
}
func (r *fakeSubscriptionRepo) FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.UserSubscription, error) {
	return nil, nil
}

type fakeFolderRepo struct {
	deletedAll bool
}

func (r *fakeFolderRepo) Create(ctx context.Context, f *entity.Folder) error { return nil }
func (r *fakeFolderRepo) Update(ctx context.Context, f *entity.Folder) error { return nil }
func (r *fakeFolderRepo) Upsert(ctx context.Context, f *entity.Folder) error { return nil }
func (r *fakeFolderRepo) Delete(ctx context.Context, id string) error        { return nil }
func (r *fakeFolderRepo) DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error {
	r.deletedAll = true
	return nil
}
func (r *fakeFolderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Folder, error) {
	return nil, nil
}
func (r *fakeFolderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Folder, error) {
	return nil, nil
}
func (r *fakeFolderRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	deleted bool
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }
func (r *fakeUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }
func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.deleted = true
	return nil
}
func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeUsageRepo struct {
	deleted bool
}

func (r *fakeUsageRepo) Upsert(ctx context.Context, m *entity.UsageMetrics) error { return nil }
func (r *fakeUsageRepo) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UsageMetrics, error) {
	return nil, nil
}
func (r *fakeUsageRepo) DeleteByUserId(ctx context.Context, userId uuid.UUID) error {
	r.deleted = true
	return nil
}

type fakePublisher struct{}

func (fakePublisher) Publish(ctx context.Context, payload []byte) error { return nil }

type quietLogger struct{}

func (quietLogger) Debug(module, message string, details map[string]interface{}) {}
func (quietLogger) Info(module, message string, details map[string]interface{})  {}
func (quietLogger) Warn(module, message string, details map[string]interface{})  {}
func (quietLogger) Error(module, message string, details map[string]interface{}) {}
func (quietLogger) Sync() error                                                  { return nil }
