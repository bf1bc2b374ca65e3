package service

import (
	"context"
	"errors"
	"time"

	"chatfolders-be/internal/dto"
	"chatfolders-be/internal/entity"
	"chatfolders-be/internal/pkg/logger"
	redisrepo "chatfolders-be/internal/repository/redis"
	"chatfolders-be/internal/repository/specification"
	"chatfolders-be/internal/repository/unitofwork"
	"chatfolders-be/internal/websocket"
	"chatfolders-be/pkg/syncer"

	"github.com/google/uuid"
)

// ErrSyncNotEntitled is returned when the user's plan has no cloud sync.
var ErrSyncNotEntitled = errors.New("cloud sync not included in plan")

type ISyncService interface {
	Enable(ctx context.Context, userId uuid.UUID, req *dto.EnableSyncRequest) (*dto.EnableSyncResponse, error)
	Disable(ctx context.Context, userId uuid.UUID) error
	Push(ctx context.Context, userId uuid.UUID, req *dto.SyncPushRequest) (*dto.SyncPushResponse, error)
	State(ctx context.Context, userId uuid.UUID, deviceId string) (*dto.SyncStateResponse, error)
}

// SyncSessionStore is the per-device session persistence the service
// needs; the Redis repository implements it.
type SyncSessionStore interface {
	Save(ctx context.Context, session *redisrepo.SyncSession) error
	Get(ctx context.Context, userId, deviceId string) (*redisrepo.SyncSession, error)
	DeleteAllForUser(ctx context.Context, userId string) error
}

type syncService struct {
	uowFactory  unitofwork.RepositoryFactory
	planService PlanService
	sessions    SyncSessionStore
	hub         *websocket.Hub
	logger      logger.ILogger
}

func NewSyncService(
	uowFactory unitofwork.RepositoryFactory,
	planService PlanService,
	sessions SyncSessionStore,
	hub *websocket.Hub,
	log logger.ILogger,
) ISyncService {
	return &syncService{
		uowFactory:  uowFactory,
		planService: planService,
		sessions:    sessions,
		hub:         hub,
		logger:      log,
	}
}

func (s *syncService) Enable(ctx context.Context, userId uuid.UUID, req *dto.EnableSyncRequest) (*dto.EnableSyncResponse, error) {
	if err := s.requireEntitlement(ctx, userId); err != nil {
		return nil, err
	}

	machine := syncer.NewMachine()
	if err := machine.To(syncer.StateSyncing); err != nil {
		return nil, err
	}

	session := &redisrepo.SyncSession{
		UserID:   userId.String(),
		DeviceID: req.DeviceId,
		State:    machine.State(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.notifyState(userId, machine.State())

	return &dto.EnableSyncResponse{State: machine.State()}, nil
}

// Disable drops every device session. Local data on the devices is
// untouched; they simply stop syncing.
func (s *syncService) Disable(ctx context.Context, userId uuid.UUID) error {
	return s.sessions.DeleteAllForUser(ctx, userId.String())
}

// Push runs one sync pass: merge the device snapshot with the stored
// copy, persist the result, and report the session state. A failed pass
// answers with state "error" instead of an HTTP failure so the device
// keeps its local data and retries later.
func (s *syncService) Push(ctx context.Context, userId uuid.UUID, req *dto.SyncPushRequest) (*dto.SyncPushResponse, error) {
	if err := s.requireEntitlement(ctx, userId); err != nil {
		return nil, err
	}

	machine, err := s.resumeMachine(ctx, userId, req.DeviceId)
	if err != nil {
		return nil, err
	}

	if machine.State() != syncer.StateSyncing {
		if err := machine.To(syncer.StateSyncing); err != nil {
			return nil, err
		}
	}

	merged, err := s.runPass(ctx, userId, req.Folders)
	if err != nil {
		_ = machine.To(syncer.StateError)
		s.saveState(ctx, userId, req.DeviceId, machine.State(), err.Error())
		return &dto.SyncPushResponse{
			State: machine.State(),
			Error: err.Error(),
		}, nil
	}

	if err := machine.To(syncer.StateSynced); err != nil {
		return nil, err
	}
	s.saveState(ctx, userId, req.DeviceId, machine.State(), "")

	return &dto.SyncPushResponse{
		State:   machine.State(),
		Folders: merged,
	}, nil
}

func (s *syncService) State(ctx context.Context, userId uuid.UUID, deviceId string) (*dto.SyncStateResponse, error) {
	session, err := s.sessions.Get(ctx, userId.String(), deviceId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return &dto.SyncStateResponse{State: syncer.StateOffline}, nil
	}
	return &dto.SyncStateResponse{
		State:     session.State,
		LastError: session.LastError,
	}, nil
}

func (s *syncService) requireEntitlement(ctx context.Context, userId uuid.UUID) error {
	plan, err := s.planService.GetUserPlan(ctx, userId)
	if err != nil {
		return err
	}
	if !plan.CloudSyncEnabled {
		return ErrSyncNotEntitled
	}
	return nil
}

func (s *syncService) resumeMachine(ctx context.Context, userId uuid.UUID, deviceId string) (*syncer.Machine, error) {
	session, err := s.sessions.Get(ctx, userId.String(), deviceId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return syncer.NewMachine(), nil
	}
	return syncer.Resume(session.State), nil
}

func (s *syncService) saveState(ctx context.Context, userId uuid.UUID, deviceId string, state syncer.State, lastError string) {
	session := &redisrepo.SyncSession{
		UserID:    userId.String(),
		DeviceID:  deviceId,
		State:     state,
		LastError: lastError,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		// The merge result already went back to the device, but a device
		// polling the state endpoint will now read a stale session.
		s.logger.Error("SyncService", "Failed to save sync session", map[string]interface{}{
			"error":     err,
			"user_id":   userId.String(),
			"device_id": deviceId,
		})
	}
	s.notifyState(userId, state)
}

// notifyState pushes the new session state to the user's other devices.
func (s *syncService) notifyState(userId uuid.UUID, state syncer.State) {
	if s.hub == nil {
		return
	}
	s.hub.Send(userId, websocket.ChangeMessage{
		Action: "sync_state_changed",
		State:  string(state),
	})
}

// runPass merges the device snapshot with the stored folders and writes
// the union back.
func (s *syncService) runPass(ctx context.Context, userId uuid.UUID, local []syncer.Folder) ([]syncer.Folder, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	remote, err := s.loadRemote(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	merged := syncer.Merge(remote, local)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	for position, folder := range merged {
		ent := entity.Folder{
			Id:        folder.Id,
			Name:      folder.Name,
			Emoji:     folder.Emoji,
			UserId:    userId,
			Position:  position,
			CreatedAt: folder.CreatedAt,
		}
		if ent.CreatedAt.IsZero() {
			ent.CreatedAt = time.Now()
		}
		if err := uow.FolderRepository().Upsert(ctx, &ent); err != nil {
			return nil, err
		}

		for convPosition, conv := range folder.Conversations {
			convEnt := entity.Conversation{
				Id:           conv.Id,
				FolderId:     folder.Id,
				UserId:       userId,
				Title:        conv.Title,
				Platform:     entity.Platform(conv.Platform),
				OriginURL:    conv.OriginURL,
				Position:     convPosition,
				CapturedAt:   conv.CapturedAt,
				CrossFiledIn: conv.FolderIds,
			}
			if convEnt.CapturedAt.IsZero() {
				convEnt.CapturedAt = time.Now()
			}
			if err := uow.ConversationRepository().Upsert(ctx, &convEnt); err != nil {
				return nil, err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return merged, nil
}

func (s *syncService) loadRemote(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]syncer.Folder, error) {
	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]syncer.Folder, 0, len(folders))
	for _, folder := range folders {
		conversations, err := uow.ConversationRepository().FindAll(ctx,
			specification.ByFolderID{FolderID: folder.Id},
			specification.OrderBy{Field: "position"},
		)
		if err != nil {
			return nil, err
		}

		wire := syncer.Folder{
			Id:            folder.Id,
			Name:          folder.Name,
			Emoji:         folder.Emoji,
			CreatedAt:     folder.CreatedAt,
			Conversations: make([]syncer.Conversation, 0, len(conversations)),
		}
		for _, conv := range conversations {
			wire.Conversations = append(wire.Conversations, syncer.Conversation{
				Id:         conv.Id,
				Title:      conv.Title,
				Platform:   string(conv.Platform),
				OriginURL:  conv.OriginURL,
				CapturedAt: conv.CapturedAt,
				FolderIds:  conv.CrossFiledIn,
			})
		}
		result = append(result, wire)
	}

	return result, nil
}
