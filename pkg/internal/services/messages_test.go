package services

import (
	"errors"
	"testing"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
)

func TestSendMessageGates(t *testing.T) {
	testDatabase(t)

	alice := testAccount(t, "alice")
	bob := testAccount(t, "bob")

	if _, err := SendMessage(alice, bob, "hey"); !errors.Is(err, ErrMessagingNotMutual) {
		t.Errorf("strangers cannot message, got %v", err)
	}

	// One direction is not enough.
	FollowAccount(alice, bob)
	if _, err := SendMessage(alice, bob, "hey"); !errors.Is(err, ErrMessagingNotMutual) {
		t.Errorf("a one-way follow must not open messaging, got %v", err)
	}

	var count int64
	database.C.Model(&models.Message{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected sends must not store anything, found %d rows", count)
	}

	FollowAccount(bob, alice)
	if _, err := SendMessage(alice, bob, "hey"); err != nil {
		t.Fatalf("mutual followers should be able to message: %v", err)
	}

	if _, err := SendMessage(alice, alice, "note to self"); !errors.Is(err, ErrSelfMessage) {
		t.Errorf("messaging yourself should be rejected, got %v", err)
	}
	if _, err := SendMessage(alice, bob, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("blank content should be rejected, got %v", err)
	}

	// The gate reflects the graph as it is now, not as it was.
	UnfollowAccount(bob, alice)
	if _, err := SendMessage(alice, bob, "still there?"); !errors.Is(err, ErrMessagingNotMutual) {
		t.Errorf("breaking mutuality must close messaging again, got %v", err)
	}
}

func TestOpenThread(t *testing.T) {
	testDatabase(t)

	alice := testAccount(t, "alice")
	bob := testAccount(t, "bob")
	makeMutual(t, alice, bob)

	SendMessage(alice, bob, "hello")
	SendMessage(bob, alice, "hi there")
	SendMessage(alice, bob, "how is the rewrite going?")

	if got := CountUnreadMessages(bob); got != 2 {
		t.Fatalf("bob's unread count = %d, want 2", got)
	}

	thread, err := OpenThread(bob, alice)
	if err != nil {
		t.Fatalf("unable to open thread: %v", err)
	}
	if len(thread) != 3 {
		t.Fatalf("thread should carry both directions, got %d messages", len(thread))
	}
	for i := 1; i < len(thread); i++ {
		if thread[i].ID < thread[i-1].ID {
			t.Fatal("thread should be in chronological order")
		}
	}

	// Opening the thread read everything addressed to bob.
	if got := CountUnreadMessages(bob); got != 0 {
		t.Errorf("bob's unread count after viewing = %d, want 0", got)
	}
	// Alice still has not seen bob's reply.
	if got := CountUnreadMessages(alice); got != 1 {
		t.Errorf("alice's unread count = %d, want 1", got)
	}

	if _, err := OpenThread(bob, bob); !errors.Is(err, ErrSelfMessage) {
		t.Errorf("opening a thread with yourself should be rejected, got %v", err)
	}

	carol := testAccount(t, "carol")
	if _, err := OpenThread(bob, carol); !errors.Is(err, ErrMessagingNotMutual) {
		t.Errorf("threads require mutuality, got %v", err)
	}
}

func TestListConversations(t *testing.T) {
	testDatabase(t)

	alice := testAccount(t, "alice")
	bob := testAccount(t, "bob")
	carol := testAccount(t, "carol")
	makeMutual(t, alice, bob)
	makeMutual(t, alice, carol)

	SendMessage(bob, alice, "lunch?")
	SendMessage(alice, bob, "sure")
	SendMessage(carol, alice, "review my patch please")
	SendMessage(carol, alice, "no rush")

	conversations, err := ListConversations(alice)
	if err != nil {
		t.Fatalf("unable to list conversations: %v", err)
	}
	if len(conversations) != 2 {
		t.Fatalf("alice should have 2 conversations, got %d", len(conversations))
	}

	// Carol's thread moved last, so it sorts first.
	if conversations[0].Account.Name != "carol" {
		t.Errorf("most recent thread first, got %q", conversations[0].Account.Name)
	}
	if conversations[0].LastMessage.Content != "no rush" {
		t.Errorf("last message = %q, want the latest one", conversations[0].LastMessage.Content)
	}
	if conversations[0].UnreadCount != 2 {
		t.Errorf("carol thread unread = %d, want 2", conversations[0].UnreadCount)
	}
	if conversations[1].Account.Name != "bob" || conversations[1].UnreadCount != 1 {
		t.Errorf("bob thread = %q with %d unread, want bob with 1", conversations[1].Account.Name, conversations[1].UnreadCount)
	}

	// Viewing carol's thread zeroes that counter only.
	if _, err := OpenThread(alice, carol); err != nil {
		t.Fatalf("unable to open thread: %v", err)
	}
	conversations, err = ListConversations(alice)
	if err != nil {
		t.Fatalf("unable to list conversations again: %v", err)
	}
	for _, conversation := range conversations {
		want := 0
		if conversation.Account.Name == "bob" {
			want = 1
		}
		if conversation.UnreadCount != want {
			t.Errorf("%s thread unread = %d, want %d", conversation.Account.Name, conversation.UnreadCount, want)
		}
	}

	empty, err := ListConversations(testAccount(t, "dave"))
	if err != nil {
		t.Fatalf("unable to list conversations for a fresh account: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("a fresh account has no conversations, got %d", len(empty))
	}
}
