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

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrUnknownPlatform      = errors.New("unknown platform")
)

type IConversationService interface {
	Capture(ctx context.Context, userId uuid.UUID, req *dto.CaptureConversationRequest) (*dto.CaptureConversationResponse, error)
	Rename(ctx context.Context, userId uuid.UUID, req *dto.RenameConversationRequest) error
	Move(ctx context.Context, userId uuid.UUID, req *dto.MoveConversationRequest) error
	CrossFile(ctx context.Context, userId uuid.UUID, req *dto.CrossFileConversationRequest) error
	Unfile(ctx context.Context, userId uuid.UUID, req *dto.UnfileConversationRequest) error
	Delete(ctx context.Context, userId uuid.UUID, folderId, id string) error
	Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderConversationsRequest) error
}

type conversationService struct {
	uowFactory       unitofwork.RepositoryFactory
	planService      PlanService
	publisherService IPublisherService
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	planService PlanService,
	publisherService IPublisherService,
) IConversationService {
	return &conversationService{
		uowFactory:       uowFactory,
		planService:      planService,
		publisherService: publisherService,
	}
}

// Capture files a conversation into a folder. Capturing the same
// conversation id into the same folder twice is a no-op, so the
// extension can re-send on flaky networks.
func (s *conversationService) Capture(ctx context.Context, userId uuid.UUID, req *dto.CaptureConversationRequest) (*dto.CaptureConversationResponse, error) {
	platform := entity.Platform(req.Platform)
	if !platform.Valid() {
		return nil, ErrUnknownPlatform
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.FolderRepository().FindOne(ctx,
		specification.ByKey{Key: req.FolderId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, ErrFolderNotFound
	}

	existing, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByKey{Key: req.Id},
		specification.ByFolderID{FolderID: req.FolderId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.CaptureConversationResponse{
			Id:           existing.Id,
			FolderId:     existing.FolderId,
			AlreadyFiled: true,
		}, nil
	}

	// Limit check runs before the write, only for genuinely new rows
	if err := s.planService.CheckCanAddConversation(ctx, userId, req.FolderId); err != nil {
		return nil, err
	}

	count, err := uow.ConversationRepository().Count(ctx, specification.ByFolderID{FolderID: req.FolderId})
	if err != nil {
		return nil, err
	}

	capturedAt := time.Now()
	if req.CapturedAt != nil {
		capturedAt = *req.CapturedAt
	}

	conversation := entity.Conversation{
		Id:         req.Id,
		FolderId:   req.FolderId,
		UserId:     userId,
		Title:      req.Title,
		Platform:   platform,
		OriginURL:  req.OriginURL,
		Position:   int(count),
		CapturedAt: capturedAt,
	}

	if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
		return nil, err
	}

	s.publishChange(ctx, userId, req.FolderId)

	return &dto.CaptureConversationResponse{
		Id:       conversation.Id,
		FolderId: conversation.FolderId,
	}, nil
}

func (s *conversationService) Rename(ctx context.Context, userId uuid.UUID, req *dto.RenameConversationRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.findOwned(ctx, uow, userId, req.FolderId, req.Id)
	if err != nil {
		return err
	}

	now := time.Now()
	conversation.Title = req.Title
	conversation.UpdatedAt = &now

	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return err
	}

	s.publishChange(ctx, userId, req.FolderId)
	return nil
}

// Move re-files a conversation into another folder. The conversation id
// travels with it, so a second copy in the target is rejected as a
// duplicate rather than silently merged.
func (s *conversationService) Move(ctx context.Context, userId uuid.UUID, req *dto.MoveConversationRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.findOwned(ctx, uow, userId, req.FolderId, req.Id)
	if err != nil {
		return err
	}

	target, err := uow.FolderRepository().FindOne(ctx,
		specification.ByKey{Key: req.TargetFolderId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrFolderNotFound
	}

	duplicate, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByKey{Key: req.Id},
		specification.ByFolderID{FolderID: req.TargetFolderId},
	)
	if err != nil {
		return err
	}
	if duplicate != nil {
		return errors.New("conversation already filed in target folder")
	}

	if err := s.planService.CheckCanAddConversation(ctx, userId, req.TargetFolderId); err != nil {
		return err
	}

	count, err := uow.ConversationRepository().Count(ctx, specification.ByFolderID{FolderID: req.TargetFolderId})
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	// Composite key includes the folder, so a move is delete + insert
	if err := uow.ConversationRepository().Delete(ctx, req.FolderId, req.Id); err != nil {
		return err
	}

	now := time.Now()
	moved := *conversation
	moved.FolderId = req.TargetFolderId
	moved.Position = int(count)
	moved.UpdatedAt = &now

	if err := uow.ConversationRepository().Create(ctx, &moved); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishChange(ctx, userId, req.FolderId)
	s.publishChange(ctx, userId, req.TargetFolderId)
	return nil
}

// CrossFile records the target folder on the conversation without
// moving it. The home folder keeps the row; the target id lands in
// CrossFiledIn.
func (s *conversationService) CrossFile(ctx context.Context, userId uuid.UUID, req *dto.CrossFileConversationRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.findOwned(ctx, uow, userId, req.FolderId, req.Id)
	if err != nil {
		return err
	}

	target, err := uow.FolderRepository().FindOne(ctx,
		specification.ByKey{Key: req.TargetFolderId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrFolderNotFound
	}

	for _, id := range conversation.CrossFiledIn {
		if id == req.TargetFolderId {
			return nil
		}
	}

	now := time.Now()
	conversation.CrossFiledIn = append(conversation.CrossFiledIn, req.TargetFolderId)
	conversation.UpdatedAt = &now

	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return err
	}

	s.publishChange(ctx, userId, req.TargetFolderId)
	return nil
}

// Unfile removes the target folder from the conversation's cross-filed
// list. Removing a folder that is not in the list is a no-op.
func (s *conversationService) Unfile(ctx context.Context, userId uuid.UUID, req *dto.UnfileConversationRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.findOwned(ctx, uow, userId, req.FolderId, req.Id)
	if err != nil {
		return err
	}

	kept := conversation.CrossFiledIn[:0]
	found := false
	for _, id := range conversation.CrossFiledIn {
		if id == req.TargetFolderId {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return nil
	}

	now := time.Now()
	conversation.CrossFiledIn = kept
	conversation.UpdatedAt = &now

	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return err
	}

	s.publishChange(ctx, userId, req.TargetFolderId)
	return nil
}

func (s *conversationService) Delete(ctx context.Context, userId uuid.UUID, folderId, id string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwned(ctx, uow, userId, folderId, id); err != nil {
		return err
	}

	if err := uow.ConversationRepository().Delete(ctx, folderId, id); err != nil {
		return err
	}

	s.publishChange(ctx, userId, folderId)
	return nil
}

func (s *conversationService) Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderConversationsRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.FolderRepository().FindOne(ctx,
		specification.ByKey{Key: req.FolderId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if folder == nil {
		return ErrFolderNotFound
	}

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.ByFolderID{FolderID: req.FolderId},
	)
	if err != nil {
		return err
	}

	byId := make(map[string]*entity.Conversation, len(conversations))
	for _, conv := range conversations {
		byId[conv.Id] = conv
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	position := 0
	for _, id := range req.ConversationIds {
		conv, ok := byId[id]
		if !ok {
			continue
		}
		if conv.Position != position {
			conv.Position = position
			if err := uow.ConversationRepository().Update(ctx, conv); err != nil {
				return err
			}
		}
		delete(byId, id)
		position++
	}

	for _, conv := range conversations {
		if _, ok := byId[conv.Id]; !ok {
			continue
		}
		conv.Position = position
		if err := uow.ConversationRepository().Update(ctx, conv); err != nil {
			return err
		}
		position++
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishChange(ctx, userId, req.FolderId)
	return nil
}

func (s *conversationService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, folderId, id string) (*entity.Conversation, error) {
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByKey{Key: id},
		specification.ByFolderID{FolderID: folderId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}
	return conversation, nil
}

func (s *conversationService) publishChange(ctx context.Context, userId uuid.UUID, folderId string) {
	msg := dto.PublishFolderChangedMessage{
		UserId:   userId,
		FolderId: folderId,
		Action:   dto.FolderActionConversationChanged,
	}
	msgJson, _ := json.Marshal(msg)
	_ = s.publisherService.Publish(ctx, msgJson)
}
