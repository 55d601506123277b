package api

import (
	"errors"
	"time"

	"github.com/devlog-ge/devlog-server/pkg/internal/http/exts"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/devlog-ge/devlog-server/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func register(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
		Level    string `json:"level"`
		Gender   string `json:"gender"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.CreateAccount(data.Name, data.Email, data.Password, data.Level, data.Gender)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) || errors.Is(err, services.ErrEmailTaken) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(account)
}

func login(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"name" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.LoginAccount(data.Name, data.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	token, err := services.IssueSessionToken(account)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Cookie(&fiber.Cookie{
		Name:     "authorization",
		Value:    token,
		Expires:  time.Now().Add(services.SessionTokenDuration),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"token":   token,
		"account": account,
	})
}

func logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "authorization",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.SendStatus(fiber.StatusNoContent)
}

func getMe(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	account, err := services.GetAccount(user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(fiber.Map{
		"account":              account,
		"unread_notifications": services.CountUnreadNotifications(account),
		"unread_messages":      services.CountUnreadMessages(account),
	})
}

func changePassword(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		OldPassword     string `json:"old_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required"`
		ConfirmPassword string `json:"confirm_password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := services.ChangePassword(user, data.OldPassword, data.NewPassword, data.ConfirmPassword); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func forgotPassword(c *fiber.Ctx) error {
	var data struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := services.IssueResetToken(data.Email); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// Same answer whether or not the email is registered.
	return c.JSON(fiber.Map{
		"message": "if this email is registered, a password reset link has been sent",
	})
}

func resetPassword(c *fiber.Ctx) error {
	var data struct {
		Token           string `json:"token" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required"`
		ConfirmPassword string `json:"confirm_password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := services.ConsumeResetToken(data.Token, data.NewPassword, data.ConfirmPassword); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}
