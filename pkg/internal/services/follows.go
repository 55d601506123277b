package services

import (
	"errors"
	"fmt"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FollowAccount creates the directional edge user -> target. It reports
// whether a new edge was created; following someone twice is a no-op.
func FollowAccount(user models.Account, target models.Account) (bool, error) {
	if user.ID == target.ID {
		return false, ErrSelfFollow
	}

	var follow models.Follow
	if err := database.C.Where("follower_id = ? AND following_id = ?", user.ID, target.ID).First(&follow).Error; err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("unable to check follow state: %v", err)
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		follow = models.Follow{
			FollowerID:  user.ID,
			FollowingID: target.ID,
		}
		if err := tx.Create(&follow).Error; err != nil {
			return err
		}

		return NewNotification(tx, models.Notification{
			Kind:      models.NotificationKindFollow,
			Message:   fmt.Sprintf("%s started following you", user.Name),
			AccountID: target.ID,
			SenderID:  &user.ID,
			Metadata:  datatypes.JSONMap{"follower": user.Name},
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// UnfollowAccount removes the edge if present; removing a missing edge is a
// no-op and emits nothing.
func UnfollowAccount(user models.Account, target models.Account) (bool, error) {
	result := database.C.
		Where("follower_id = ? AND following_id = ?", user.ID, target.ID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func IsAccountFollowing(user models.Account, target models.Account) bool {
	var count int64
	if err := database.C.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", user.ID, target.ID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// IsAccountMutual holds when both directional edges exist right now; the
// check is never cached.
func IsAccountMutual(user models.Account, target models.Account) bool {
	return IsAccountFollowing(user, target) && IsAccountFollowing(target, user)
}

func ListFollowers(user models.Account) ([]models.Account, error) {
	var follows []models.Follow
	if err := database.C.
		Where("following_id = ?", user.ID).
		Preload("Follower").
		Find(&follows).Error; err != nil {
		return nil, fmt.Errorf("unable to list followers: %v", err)
	}

	return lo.Map(follows, func(item models.Follow, index int) models.Account {
		return item.Follower
	}), nil
}

func ListFollowing(user models.Account) ([]models.Account, error) {
	var follows []models.Follow
	if err := database.C.
		Where("follower_id = ?", user.ID).
		Preload("Following").
		Find(&follows).Error; err != nil {
		return nil, fmt.Errorf("unable to list following: %v", err)
	}

	return lo.Map(follows, func(item models.Follow, index int) models.Account {
		return item.Following
	}), nil
}
