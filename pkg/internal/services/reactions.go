package services

import (
	"errors"
	"fmt"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TogglePostLike flips the like state of (post, user) and reports the
// resulting state. Creating the like and notifying the author commit as one
// unit; a failed notification rolls the like back too.
func TogglePostLike(user models.Account, postID uint) (bool, error) {
	var post models.Post
	if err := database.C.Where("id = ?", postID).First(&post).Error; err != nil {
		return false, err
	}

	var like models.Like
	if err := database.C.Where("post_id = ? AND author_id = ?", post.ID, user.ID).First(&like).Error; err == nil {
		if err := database.C.Delete(&like).Error; err != nil {
			return true, err
		}
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("unable to check like state: %v", err)
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		like = models.Like{
			PostID:   post.ID,
			AuthorID: user.ID,
		}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}

		if post.AuthorID == user.ID {
			return nil
		}
		return NewNotification(tx, models.Notification{
			Kind:      models.NotificationKindLike,
			Message:   fmt.Sprintf("%s liked your post: %q", user.Name, post.Title),
			AccountID: post.AuthorID,
			SenderID:  &user.ID,
			PostID:    &post.ID,
			Metadata:  datatypes.JSONMap{"post_title": post.Title},
		})
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// TogglePostRepost is the same toggle as TogglePostLike over the repost
// relation.
func TogglePostRepost(user models.Account, postID uint) (bool, error) {
	var post models.Post
	if err := database.C.Where("id = ?", postID).First(&post).Error; err != nil {
		return false, err
	}

	var repost models.Repost
	if err := database.C.Where("post_id = ? AND author_id = ?", post.ID, user.ID).First(&repost).Error; err == nil {
		if err := database.C.Delete(&repost).Error; err != nil {
			return true, err
		}
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("unable to check repost state: %v", err)
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		repost = models.Repost{
			PostID:   post.ID,
			AuthorID: user.ID,
		}
		if err := tx.Create(&repost).Error; err != nil {
			return err
		}

		if post.AuthorID == user.ID {
			return nil
		}
		return NewNotification(tx, models.Notification{
			Kind:      models.NotificationKindRepost,
			Message:   fmt.Sprintf("%s reposted your post: %q", user.Name, post.Title),
			AccountID: post.AuthorID,
			SenderID:  &user.ID,
			PostID:    &post.ID,
			Metadata:  datatypes.JSONMap{"post_title": post.Title},
		})
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
