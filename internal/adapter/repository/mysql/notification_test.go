package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	notifDomain "loanserve-backend/internal/domain/notification"
)

func TestNotificationRepository_ListByUserID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewNotificationRepository(db)

	seed := []notifDomain.Notification{
		{NotificationID: "n1", UserID: "u1", Type: notifDomain.TypeApplicationReceived, Title: "a"},
		{NotificationID: "n2", UserID: "u1", Type: notifDomain.TypePaymentReceived, Title: "b", Read: true},
		{NotificationID: "n3", UserID: "u2", Type: notifDomain.TypeLoanDisbursed, Title: "c"},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seed %s: %v", seed[i].NotificationID, err)
		}
	}

	all, err := repo.ListByUserID(ctx, "u1", false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("u1 notifications = %d, want 2", len(all))
	}
	// newest first
	if all[0].NotificationID != "n2" || all[1].NotificationID != "n1" {
		t.Fatalf("unexpected order: %s, %s", all[0].NotificationID, all[1].NotificationID)
	}

	unread, err := repo.ListByUserID(ctx, "u1", true)
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if len(unread) != 1 || unread[0].NotificationID != "n1" {
		t.Fatalf("unexpected unread: %+v", unread)
	}
}

func TestNotificationRepository_MarkReadRoundtrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewNotificationRepository(db)

	n := notifDomain.Notification{NotificationID: "n1", UserID: "u1", Type: notifDomain.TypeLoanCompleted, Title: "t"}
	if err := repo.Create(ctx, &n); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByNotificationID(ctx, "n1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Read = true
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("save: %v", err)
	}

	again, err := repo.GetByNotificationID(ctx, "n1")
	if err != nil || !again.Read {
		t.Fatalf("read flag lost: %+v err=%v", again, err)
	}

	if _, err := repo.GetByNotificationID(ctx, "ghost"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing err = %v, want gorm.ErrRecordNotFound", err)
	}
}
