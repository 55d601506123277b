package api

import (
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/devlog-ge/devlog-server/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

// listNotifications returns the caller's notifications, newest first. Fetching
// them also marks every unread entry as read.
func listNotifications(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	items, err := services.ListNotifications(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": len(items),
		"data":  items,
	})
}
