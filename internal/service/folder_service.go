package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"chatfolders-be/internal/dto"
	"chatfolders-be/internal/entity"
	"chatfolders-be/internal/repository/specification"
	"chatfolders-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrFolderNotFound = errors.New("folder not found")

type IFolderService interface {
	GetAll(ctx context.Context, userId uuid.UUID) (*dto.FolderListResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFolderRequest) (*dto.CreateFolderResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateFolderRequest) (*dto.UpdateFolderResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id string) error
	Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderFoldersRequest) error
}

type folderService struct {
	uowFactory       unitofwork.RepositoryFactory
	planService      PlanService
	publisherService IPublisherService
}

func NewFolderService(
	uowFactory unitofwork.RepositoryFactory,
	planService PlanService,
	publisherService IPublisherService,
) IFolderService {
	return &folderService{
		uowFactory:       uowFactory,
		planService:      planService,
		publisherService: publisherService,
	}
}

func (s *folderService) GetAll(ctx context.Context, userId uuid.UUID) (*dto.FolderListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return nil, err
	}

	result := &dto.FolderListResponse{Folders: make([]dto.FolderResponse, 0, len(folders))}
	if len(folders) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(folders))
	for _, folder := range folders {
		ids = append(ids, folder.Id)
	}

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.ByFolderIDs{FolderIDs: ids},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return nil, err
	}

	byFolder := make(map[string][]dto.ConversationResponse, len(folders))
	for _, conv := range conversations {
		byFolder[conv.FolderId] = append(byFolder[conv.FolderId], toConversationResponse(conv))
	}

	for _, folder := range folders {
		res := dto.FolderResponse{
			Id:            folder.Id,
			Name:          folder.Name,
			Emoji:         folder.Emoji,
			Position:      folder.Position,
			CreatedAt:     folder.CreatedAt,
			UpdatedAt:     folder.UpdatedAt,
			Conversations: byFolder[folder.Id],
		}
		if res.Conversations == nil {
			res.Conversations = make([]dto.ConversationResponse, 0)
		}
		result.Folders = append(result.Folders, res)
	}

	return result, nil
}

func (s *folderService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFolderRequest) (*dto.CreateFolderResponse, error) {
	// Limit check runs before any write
	if err := s.planService.CheckCanCreateFolder(ctx, userId); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Idempotent on client-generated id: re-sending the same create is a no-op
	existing, err := uow.FolderRepository().FindOne(ctx,
		specification.ByKey{Key: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.CreateFolderResponse{Id: existing.Id}, nil
	}

	count, err := uow.FolderRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	folder := entity.Folder{
		Id:        req.Id,
		Name:      req.Name,
		Emoji:     req.Emoji,
		UserId:    userId,
		Position:  int(count),
		CreatedAt: time.Now(),
	}

	if err := uow.FolderRepository().Create(ctx, &folder); err != nil {
		return nil, err
	}

	s.publishChange(ctx, userId, folder.Id, dto.FolderActionCreated)

	return &dto.CreateFolderResponse{Id: folder.Id}, nil
}

func (s *folderService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateFolderRequest) (*dto.UpdateFolderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.FolderRepository().FindOne(ctx,
		specification.ByKey{Key: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, ErrFolderNotFound
	}

	now := time.Now()
	folder.Name = req.Name
	folder.Emoji = req.Emoji
	folder.UpdatedAt = &now

	if err := uow.FolderRepository().Update(ctx, folder); err != nil {
		return nil, err
	}

	s.publishChange(ctx, userId, folder.Id, dto.FolderActionUpdated)

	return &dto.UpdateFolderResponse{Id: folder.Id}, nil
}

func (s *folderService) Delete(ctx context.Context, userId uuid.UUID, id string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.FolderRepository().FindOne(ctx,
		specification.ByKey{Key: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if folder == nil {
		return ErrFolderNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	// Conversations go with the folder
	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.ByFolderID{FolderID: id},
	)
	if err != nil {
		return err
	}
	for _, conv := range conversations {
		if err := uow.ConversationRepository().Delete(ctx, id, conv.Id); err != nil {
			return err
		}
	}

	if err := uow.FolderRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishChange(ctx, userId, id, dto.FolderActionDeleted)
	return nil
}

func (s *folderService) Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderFoldersRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folders, err := uow.FolderRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}

	byId := make(map[string]*entity.Folder, len(folders))
	for _, folder := range folders {
		byId[folder.Id] = folder
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	// Listed folders take the new order; unknown ids are ignored so a
	// stale client list cannot fail the whole reorder.
	position := 0
	for _, id := range req.FolderIds {
		folder, ok := byId[id]
		if !ok {
			continue
		}
		if folder.Position != position {
			folder.Position = position
			if err := uow.FolderRepository().Update(ctx, folder); err != nil {
				return err
			}
		}
		delete(byId, id)
		position++
	}

	// Folders absent from the request keep their relative order after the
	// listed ones.
	remaining := make([]*entity.Folder, 0, len(byId))
	for _, folder := range folders {
		if _, ok := byId[folder.Id]; ok {
			remaining = append(remaining, folder)
		}
	}
	for _, folder := range remaining {
		folder.Position = position
		if err := uow.FolderRepository().Update(ctx, folder); err != nil {
			return err
		}
		position++
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishChange(ctx, userId, "", dto.FolderActionReordered)
	return nil
}

func (s *folderService) publishChange(ctx context.Context, userId uuid.UUID, folderId, action string) {
	msg := dto.PublishFolderChangedMessage{
		UserId:   userId,
		FolderId: folderId,
		Action:   action,
	}
	msgJson, _ := json.Marshal(msg)
	// Change fan-out is best effort; the operation already succeeded
	_ = s.publisherService.Publish(ctx, msgJson)
}

func toConversationResponse(conv *entity.Conversation) dto.ConversationResponse {
	return dto.ConversationResponse{
		Id:           conv.Id,
		FolderId:     conv.FolderId,
		Title:        conv.Title,
		Platform:     string(conv.Platform),
		OriginURL:    conv.OriginURL,
		Position:     conv.Position,
		CapturedAt:   conv.CapturedAt,
		UpdatedAt:    conv.UpdatedAt,
		CrossFiledIn: conv.CrossFiledIn,
	}
}
