package service

import (
	"context"
	"testing"

	"chatfolders-be/internal/dto"
	"chatfolders-be/internal/entity"

	"github.com/google/uuid"
)

func TestUnfile(t *testing.T) {
	userId := uuid.New()

	newService := func(row *entity.Conversation) (IConversationService, *fakeConversationRepo) {
		repo := &fakeConversationRepo{row: row}
		factory := &fakeFactory{uow: &fakeUow{conversations: repo}}
		return NewConversationService(factory, nil, fakePublisher{}), repo
	}

	t.Run("removes the target folder from the cross-filed list", func(t *testing.T) {
		conv := &entity.Conversation{
			Id:           "c1",
			FolderId:     "home",
			UserId:       userId,
			CrossFiledIn: []string{"work", "archive"},
		}
		svc, repo := newService(conv)

		err := svc.Unfile(context.Background(), userId, &dto.UnfileConversationRequest{
			FolderId:       "home",
			Id:             "c1",
			TargetFolderId: "archive",
		})
		if err != nil {
			t.Fatalf("Unfile: %v", err)
		}
		if repo.updated == nil {
			t.Fatal("expected the conversation to be persisted")
		}
		if len(repo.updated.CrossFiledIn) != 1 || repo.updated.CrossFiledIn[0] != "work" {
			t.Errorf("cross-filed list = %v, want [work]", repo.updated.CrossFiledIn)
		}
	})

	t.Run("absent folder id is a no-op", func(t *testing.T) {
		conv := &entity.Conversation{
			Id:           "c1",
			FolderId:     "home",
			UserId:       userId,
			CrossFiledIn: []string{"work"},
		}
		svc, repo := newService(conv)

		err := svc.Unfile(context.Background(), userId, &dto.UnfileConversationRequest{
			FolderId:       "home",
			Id:             "c1",
			TargetFolderId: "never-filed-here",
		})
		if err != nil {
			t.Fatalf("Unfile: %v", err)
		}
		if repo.updated != nil {
			t.Error("no write expected when the folder is not in the list")
		}
	})

	t.Run("unknown conversation", func(t *testing.T) {
		svc, _ := newService(nil)

		err := svc.Unfile(context.Background(), userId, &dto.UnfileConversationRequest{
			FolderId:       "home",
			Id:             "missing",
			TargetFolderId: "work",
		})
		if err != ErrConversationNotFound {
			t.Errorf("error = %v, want ErrConversationNotFound", err)
		}
	})
}
