package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestDeleteAccountCascadesEverything(t *testing.T) {
	uow := &fakeUow{
		conversations: &fakeConversationRepo{},
		folders:       &fakeFolderRepo{},
		subscriptions: &fakeSubscriptionRepo{},
		usage:         &fakeUsageRepo{},
		users:         &fakeUserRepo{},
	}
	svc := NewUserService(&fakeFactory{uow: uow})

	if err := svc.DeleteAccount(context.Background(), uuid.New()); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	if !uow.conversations.deletedAll {
		t.Error("conversations were not removed")
	}
	if !uow.folders.deletedAll {
		t.Error("folders were not removed")
	}
	if !uow.subscriptions.deletedAll {
		t.Error("subscriptions were not removed")
	}
	if !uow.usage.deleted {
		t.Error("usage metrics row was not removed")
	}
	if !uow.users.deleted {
		t.Error("user row was not removed")
	}
	if !uow.committed {
		t.Error("transaction was not committed")
	}
}
