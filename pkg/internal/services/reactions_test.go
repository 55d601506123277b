package services

import (
	"errors"
	"testing"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"gorm.io/gorm"
)

func TestTogglePostLike(t *testing.T) {
	testDatabase(t)

	alice := testAccount(t, "alice")
	bob := testAccount(t, "bob")
	post := testPost(t, alice, "Generics in practice", true)

	liked, err := TogglePostLike(bob, post.ID)
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if !liked {
		t.Error("first toggle should like the post")
	}
	if got := CountPostLikes(post.ID); got != 1 {
		t.Errorf("like count = %d, want 1", got)
	}
	if got := CountUnreadNotifications(alice); got != 1 {
		t.Errorf("author should be notified once, got %d", got)
	}

	liked, err = TogglePostLike(bob, post.ID)
	if err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	if liked {
		t.Error("second toggle should remove the like")
	}
	if got := CountPostLikes(post.ID); got != 0 {
		t.Errorf("like count after unlike = %d, want 0", got)
	}
	if got := CountUnreadNotifications(alice); got != 1 {
		t.Errorf("unlike must not notify, got %d", got)
	}

	// The storage row was removed, so liking again has to work.
	liked, err = TogglePostLike(bob, post.ID)
	if err != nil {
		t.Fatalf("re-like failed: %v", err)
	}
	if !liked {
		t.Error("third toggle should like the post again")
	}
}

func TestTogglePostLikeSelf(t *testing.T) {
	testDatabase(t)

	alice := testAccount(t, "alice")
	post := testPost(t, alice, "Thoughts on error wrapping", true)

	liked, err := TogglePostLike(alice, post.ID)
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if !liked {
		t.Error("authors can like their own posts")
	}
	if got := CountUnreadNotifications(alice); got != 0 {
		t.Errorf("liking your own post must not notify yourself, got %d", got)
	}
}

func TestTogglePostLikeMissingPost(t *testing.T) {
	testDatabase(t)

	alice := testAccount(t, "alice")

	if _, err := TogglePostLike(alice, 404); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("liking a missing post should report record not found, got %v", err)
	}

	var count int64
	database.C.Model(&models.Like{}).Count(&count)
	if count != 0 {
		t.Errorf("no like rows expected, found %d", count)
	}
}

func TestTogglePostRepost(t *testing.T) {
	testDatabase(t)

	alice := testAccount(t, "alice")
	bob := testAccount(t, "bob")
	post := testPost(t, alice, "Profiling with pprof", true)

	reposted, err := TogglePostRepost(bob, post.ID)
	if err != nil {
		t.Fatalf("repost failed: %v", err)
	}
	if !reposted {
		t.Error("first toggle should repost")
	}

	notifications, err := ListNotifications(alice)
	if err != nil {
		t.Fatalf("unable to list notifications: %v", err)
	}
	if len(notifications) != 1 || notifications[0].Kind != models.NotificationKindRepost {
		t.Fatalf("author should have one repost notification, got %d", len(notifications))
	}

	reposted, err = TogglePostRepost(bob, post.ID)
	if err != nil {
		t.Fatalf("un-repost failed: %v", err)
	}
	if reposted {
		t.Error("second toggle should remove the repost")
	}
	if got := CountPostReposts(post.ID); got != 0 {
		t.Errorf("repost count = %d, want 0", got)
	}

	reposts, err := ListAccountReposts(bob)
	if err != nil {
		t.Fatalf("unable to list reposts: %v", err)
	}
	if len(reposts) != 0 {
		t.Errorf("bob's profile should show no reposts, got %d", len(reposts))
	}
}

func TestListAccountReposts(t *testing.T) {
	testDatabase(t)

	alice := testAccount(t, "alice")
	bob := testAccount(t, "bob")
	published := testPost(t, alice, "Published piece", true)
	pending := testPost(t, alice, "Pending piece", false)

	if _, err := TogglePostRepost(bob, published.ID); err != nil {
		t.Fatalf("repost failed: %v", err)
	}
	if _, err := TogglePostRepost(bob, pending.ID); err != nil {
		t.Fatalf("repost failed: %v", err)
	}

	reposts, err := ListAccountReposts(bob)
	if err != nil {
		t.Fatalf("unable to list reposts: %v", err)
	}
	if len(reposts) != 1 || reposts[0].ID != published.ID {
		t.Fatalf("only the published original should be listed, got %d entries", len(reposts))
	}
}
