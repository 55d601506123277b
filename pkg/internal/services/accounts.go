package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MinPasswordLength = 8

var AccountLevels = []string{
	models.LevelBeginner,
	models.LevelJunior,
	models.LevelIntermediate,
	models.LevelSenior,
}

func GetAccount(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func GetAccountWithName(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func defaultAvatar(gender string) string {
	switch gender {
	case "male":
		return "/static/images/avatar-male.png"
	case "female":
		return "/static/images/avatar-female.png"
	default:
		return "/static/images/avatar-default.png"
	}
}

func CreateAccount(name, email, password, level, gender string) (models.Account, error) {
	var account models.Account

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if len(name) == 0 || len(email) == 0 {
		return account, fmt.Errorf("username and email are required")
	}
	if len(password) < MinPasswordLength {
		return account, ErrPasswordTooShort
	}
	if len(level) == 0 {
		level = models.LevelBeginner
	} else if !lo.Contains(AccountLevels, level) {
		return account, ErrInvalidLevel
	}

	if err := database.C.Where("name = ?", name).First(&account).Error; err == nil {
		return account, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return account, fmt.Errorf("unable to check username: %v", err)
	}
	if err := database.C.Where("email = ?", email).First(&account).Error; err == nil {
		return account, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return account, fmt.Errorf("unable to check email: %v", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return account, fmt.Errorf("unable to hash password: %v", err)
	}

	account = models.Account{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
		Level:    level,
		Gender:   gender,
		Avatar:   defaultAvatar(gender),
	}

	if err := database.C.Create(&account).Error; err != nil {
		// The unique indexes are the last line of defense against a
		// concurrent registration with the same name or email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return account, ErrUsernameTaken
		}
		return account, err
	}

	return account, nil
}

func LoginAccount(name, password string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		return account, ErrCredentialsInvalid
	}
	if !VerifyPassword(account.Password, password) {
		return account, ErrCredentialsInvalid
	}
	return account, nil
}

func ChangePassword(user models.Account, old, next, confirm string) error {
	if !VerifyPassword(user.Password, old) {
		return ErrCredentialsInvalid
	}
	if len(next) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if next != confirm {
		return ErrPasswordMismatch
	}

	hash, err := HashPassword(next)
	if err != nil {
		return fmt.Errorf("unable to hash password: %v", err)
	}
	if err := database.C.Model(&user).Update("password", hash).Error; err != nil {
		return err
	}

	InvalidateSessionAccount(user.ID)
	return nil
}

func UpdateAccountBio(user models.Account, bio string) (models.Account, error) {
	user.Bio = bio
	if err := database.C.Model(&user).Update("bio", bio).Error; err != nil {
		return user, err
	}
	InvalidateSessionAccount(user.ID)
	return user, nil
}

func UpdateAccountLevel(user models.Account, level string) (models.Account, error) {
	if !lo.Contains(AccountLevels, level) {
		return user, ErrInvalidLevel
	}
	user.Level = level
	if err := database.C.Model(&user).Update("level", level).Error; err != nil {
		return user, err
	}
	InvalidateSessionAccount(user.ID)
	return user, nil
}

func UpdateAccountAvatar(user models.Account, url string) (models.Account, error) {
	user.Avatar = url
	if err := database.C.Model(&user).Update("avatar", url).Error; err != nil {
		return user, err
	}
	InvalidateSessionAccount(user.ID)
	return user, nil
}

func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), 14)
}

func VerifyPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
