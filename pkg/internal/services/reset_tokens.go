package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/mail"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

const ResetTokenDuration = time.Hour

// IssueResetToken creates an expiring reset credential for the account
// behind the email and mails the reset link. An unknown email is not an
// error so callers can answer uniformly and avoid account enumeration.
func IssueResetToken(email string) (*models.PasswordResetToken, error) {
	var account models.Account
	if err := database.C.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to look up account: %v", err)
	}

	token := models.PasswordResetToken{
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(ResetTokenDuration),
		AccountID: account.ID,
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		// A fresh request supersedes any outstanding token.
		if err := tx.Where("account_id = ?", account.ID).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&token).Error
	})
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/reset-password/%s", viper.GetString("domain"), token.Token)
	if err := mail.SendPasswordReset(account.Email, link); err != nil {
		log.Warn().Err(err).Str("email", account.Email).Msg("An error occurred when sending reset email...")
	}

	return &token, nil
}

// ConsumeResetToken validates the token and replaces the account password.
// The token is destroyed on success and cannot be replayed.
func ConsumeResetToken(raw, password, confirm string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	var token models.PasswordResetToken
	if err := database.C.
		Where("token = ? AND expires_at > ?", raw, time.Now()).
		Preload("Account").
		First(&token).Error; err != nil {
		return ErrResetTokenInvalid
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("unable to hash password: %v", err)
	}

	err = database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&token.Account).Update("password", hash).Error; err != nil {
			return err
		}
		return tx.Delete(&token).Error
	})
	if err != nil {
		return err
	}

	InvalidateSessionAccount(token.AccountID)
	return nil
}
