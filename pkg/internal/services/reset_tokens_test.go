package services

import (
	"errors"
	"testing"
	"time"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
)

func TestIssueResetToken(t *testing.T) {
	testDatabase(t)

	alice := testAccount(t, "alice")

	// Unknown emails are swallowed so callers can answer uniformly.
	token, err := IssueResetToken("nobody@example.com")
	if err != nil {
		t.Fatalf("unknown email should not be an error: %v", err)
	}
	if token != nil {
		t.Fatal("unknown email should not produce a token")
	}

	first, err := IssueResetToken(alice.Email)
	if err != nil {
		t.Fatalf("unable to issue token: %v", err)
	}
	if first == nil || len(first.Token) == 0 {
		t.Fatal("a token should be issued for a known email")
	}
	if remaining := time.Until(first.ExpiresAt); remaining <= 0 || remaining > ResetTokenDuration {
		t.Errorf("expiry should be within %v, got %v", ResetTokenDuration, remaining)
	}

	// A fresh request supersedes the outstanding token.
	second, err := IssueResetToken(alice.Email)
	if err != nil {
		t.Fatalf("unable to issue replacement token: %v", err)
	}

	var count int64
	database.C.Model(&models.PasswordResetToken{}).Where("account_id = ?", alice.ID).Count(&count)
	if count != 1 {
		t.Errorf("only the latest token should exist, found %d", count)
	}
	if err := ConsumeResetToken(first.Token, "brand new pass", "brand new pass"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Errorf("the superseded token must be dead, got %v", err)
	}
	if err := ConsumeResetToken(second.Token, "brand new pass", "brand new pass"); err != nil {
		t.Errorf("the latest token should work: %v", err)
	}
}

func TestConsumeResetToken(t *testing.T) {
	testDatabase(t)

	account, err := CreateAccount("alice", "alice@example.com", "correct horse", "", "")
	if err != nil {
		t.Fatalf("unable to create account: %v", err)
	}

	token, err := IssueResetToken(account.Email)
	if err != nil {
		t.Fatalf("unable to issue token: %v", err)
	}

	if err := ConsumeResetToken(token.Token, "short", "short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("short password should be rejected, got %v", err)
	}
	if err := ConsumeResetToken(token.Token, "brand new pass", "something else"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("mismatched confirmation should be rejected, got %v", err)
	}
	if err := ConsumeResetToken("not-a-token", "brand new pass", "brand new pass"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Errorf("an unknown token should be rejected, got %v", err)
	}

	if err := ConsumeResetToken(token.Token, "brand new pass", "brand new pass"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, err := LoginAccount("alice", "brand new pass"); err != nil {
		t.Errorf("login with the new password failed: %v", err)
	}
	if _, err := LoginAccount("alice", "correct horse"); !errors.Is(err, ErrCredentialsInvalid) {
		t.Errorf("the old password should no longer work, got %v", err)
	}

	// The token burned on use and cannot be replayed.
	if err := ConsumeResetToken(token.Token, "yet another pass", "yet another pass"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Errorf("a consumed token must be dead, got %v", err)
	}
}

func TestResetTokenExpiry(t *testing.T) {
	testDatabase(t)

	alice := testAccount(t, "alice")

	expired := models.PasswordResetToken{
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
		AccountID: alice.ID,
	}
	if err := database.C.Create(&expired).Error; err != nil {
		t.Fatalf("unable to seed token: %v", err)
	}

	if err := ConsumeResetToken(expired.Token, "brand new pass", "brand new pass"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Errorf("an expired token must be rejected, got %v", err)
	}

	live := models.PasswordResetToken{
		Token:     "live-token",
		ExpiresAt: time.Now().Add(time.Hour),
		AccountID: alice.ID,
	}
	if err := database.C.Create(&live).Error; err != nil {
		t.Fatalf("unable to seed token: %v", err)
	}

	DoAutoDatabaseCleanup()

	var tokens []models.PasswordResetToken
	if err := database.C.Find(&tokens).Error; err != nil {
		t.Fatalf("unable to list tokens: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Token != "live-token" {
		t.Errorf("cleanup should sweep only expired tokens, %d rows remain", len(tokens))
	}
}
