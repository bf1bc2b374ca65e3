package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"chatfolders-be/internal/dto"
	"chatfolders-be/internal/entity"
	redisrepo "chatfolders-be/internal/repository/redis"
	"chatfolders-be/internal/websocket"
	"chatfolders-be/pkg/syncer"

	"github.com/google/uuid"
)

type fakePlanService struct {
	plan *entity.SubscriptionPlan
}

func (f *fakePlanService) GetAllActivePlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	return nil, nil
}
func (f *fakePlanService) GetUserPlan(ctx context.Context, userId uuid.UUID) (*entity.SubscriptionPlan, error) {
	return f.plan, nil
}
func (f *fakePlanService) GetUserUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error) {
	return nil, nil
}
func (f *fakePlanService) CheckCanCreateFolder(ctx context.Context, userId uuid.UUID) error {
	return nil
}
func (f *fakePlanService) CheckCanAddConversation(ctx context.Context, userId uuid.UUID, folderId string) error {
	return nil
}

type failingSessionStore struct{}

func (failingSessionStore) Save(ctx context.Context, session *redisrepo.SyncSession) error {
	return errors.New("connection refused")
}
func (failingSessionStore) Get(ctx context.Context, userId, deviceId string) (*redisrepo.SyncSession, error) {
	return nil, nil
}
func (failingSessionStore) DeleteAllForUser(ctx context.Context, userId string) error { return nil }

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {}
func (l *recordingLogger) Info(module, message string, details map[string]interface{})  {}
func (l *recordingLogger) Warn(module, message string, details map[string]interface{})  {}
func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, message)
}
func (l *recordingLogger) Sync() error { return nil }

func TestPushLogsFailedSessionSave(t *testing.T) {
	log := &recordingLogger{}
	uow := &fakeUow{
		folders:       &fakeFolderRepo{},
		conversations: &fakeConversationRepo{},
	}
	svc := NewSyncService(
		&fakeFactory{uow: uow},
		&fakePlanService{plan: &entity.SubscriptionPlan{CloudSyncEnabled: true}},
		failingSessionStore{},
		websocket.NewHub(nil, quietLogger{}),
		log,
	)

	res, err := svc.Push(context.Background(), uuid.New(), &dto.SyncPushRequest{DeviceId: "dev-1"})
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	// The pass itself succeeded; only the advisory state write failed.
	if res.State != syncer.StateSynced {
		t.Errorf("state = %s, want %s", res.State, syncer.StateSynced)
	}

	log.mu.Lock()
	defer log.mu.Unlock()
	if len(log.errors) == 0 {
		t.Error("failed session save was not logged")
	}
}

func TestPushDeniedWithoutEntitlement(t *testing.T) {
	svc := NewSyncService(
		&fakeFactory{uow: &fakeUow{}},
		&fakePlanService{plan: &entity.SubscriptionPlan{CloudSyncEnabled: false}},
		failingSessionStore{},
		nil,
		quietLogger{},
	)

	_, err := svc.Push(context.Background(), uuid.New(), &dto.SyncPushRequest{DeviceId: "dev-1"})
	if !errors.Is(err, ErrSyncNotEntitled) {
		t.Errorf("error = %v, want ErrSyncNotEntitled", err)
	}
}
