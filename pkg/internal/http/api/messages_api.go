package api

import (
	"errors"

	"github.com/devlog-ge/devlog-server/pkg/internal/http/exts"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/devlog-ge/devlog-server/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func listConversations(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	conversations, err := services.ListConversations(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(conversations)
}

// openThread returns the full two-way history with the named account and
// marks every message they sent as read.
func openThread(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	counterpart, err := services.GetAccountWithName(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	messages, err := services.OpenThread(user, counterpart)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfMessage):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrMessagingNotMutual):
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		default:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(fiber.Map{
		"account":  counterpart,
		"messages": messages,
	})
}

func sendMessage(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		Content string `json:"content" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	receiver, err := services.GetAccountWithName(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	message, err := services.SendMessage(user, receiver, data.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfMessage), errors.Is(err, services.ErrEmptyMessage):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrMessagingNotMutual):
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		default:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}
