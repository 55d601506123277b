package services

import (
	"time"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

func DoAutoDatabaseCleanup() {
	deadline := time.Now()
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	var count int64
	if result := database.C.
		Where("expires_at < ?", deadline).
		Delete(&models.PasswordResetToken{}); result.Error == nil {
		count += result.RowsAffected
	}

	log.Debug().Int64("affected", count).Msg("Clean up entire database accomplished.")
}
