package database

import (
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Follow{},
	&models.Post{},
	&models.Comment{},
	&models.Like{},
	&models.Repost{},
	&models.Notification{},
	&models.Message{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.PasswordResetToken{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
