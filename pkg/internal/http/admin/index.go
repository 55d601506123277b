package admin

import (
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
)

func MapControllers(app *fiber.App, baseURL string) {
	admin := app.Group(baseURL, adminOnly)
	{
		admin.Get("/posts/pending", listPendingPosts)
		admin.Post("/posts/:postId/approve", approvePost)
		admin.Delete("/posts/:postId", deletePost)
	}
}

func adminOnly(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.Account)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "you need to be logged in")
	}
	if !user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "you need to be an administrator")
	}
	return c.Next()
}
