package services

import (
	"testing"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"gorm.io/datatypes"
)

func TestListNotificationsMarksRead(t *testing.T) {
	testDatabase(t)

	alice := testAccount(t, "alice")
	bob := testAccount(t, "bob")

	for _, message := range []string{"first", "second", "third"} {
		err := NewNotification(database.C, models.Notification{
			Kind:      models.NotificationKindFollow,
			Message:   message,
			AccountID: alice.ID,
			SenderID:  &bob.ID,
			Metadata:  datatypes.JSONMap{"follower": bob.Name},
		})
		if err != nil {
			t.Fatalf("unable to create notification: %v", err)
		}
	}

	if got := CountUnreadNotifications(alice); got != 3 {
		t.Fatalf("unread count = %d, want 3", got)
	}
	if got := CountUnreadNotifications(bob); got != 0 {
		t.Fatalf("the sender has no notifications, got %d", got)
	}

	notifications, err := ListNotifications(alice)
	if err != nil {
		t.Fatalf("unable to list notifications: %v", err)
	}
	if len(notifications) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notifications))
	}
	for _, notification := range notifications {
		if notification.IsRead {
			t.Error("the first fetch should still show entries as unread")
		}
		if notification.Sender == nil || notification.Sender.Name != "bob" {
			t.Error("the sender should be preloaded")
		}
	}

	// Viewing the list marked everything read in one sweep.
	if got := CountUnreadNotifications(alice); got != 0 {
		t.Errorf("unread count after viewing = %d, want 0", got)
	}

	notifications, err = ListNotifications(alice)
	if err != nil {
		t.Fatalf("unable to list notifications again: %v", err)
	}
	for _, notification := range notifications {
		if !notification.IsRead {
			t.Error("entries should stay read on later fetches")
		}
	}
}
