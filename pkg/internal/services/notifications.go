package services

import (
	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// NewNotification writes a notification inside the caller's transaction so
// it commits or rolls back together with the action that triggered it.
func NewNotification(tx *gorm.DB, notification models.Notification) error {
	if err := tx.Create(&notification).Error; err != nil {
		return err
	}

	log.Debug().Uint("recipient", notification.AccountID).Str("kind", notification.Kind).Msg("Notified account.")
	return nil
}

// ListNotifications returns the recipient's notifications newest first. The
// returned items still carry the unread flags the recipient is seeing;
// everything unread is marked read in one batch afterwards.
func ListNotifications(user models.Account) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := database.C.
		Where("account_id = ?", user.ID).
		Order("created_at DESC").
		Preload("Sender").
		Find(&notifications).Error; err != nil {
		return notifications, err
	}

	if err := database.C.Model(&models.Notification{}).
		Where("account_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error; err != nil {
		return notifications, err
	}

	return notifications, nil
}

func CountUnreadNotifications(user models.Account) int64 {
	var count int64
	if err := database.C.Model(&models.Notification{}).
		Where("account_id = ? AND is_read = ?", user.ID, false).
		Count(&count).Error; err != nil {
		return 0
	}
	return count
}
