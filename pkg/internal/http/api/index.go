package api

import (
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL)
	{
		auth := api.Group("/auth")
		{
			auth.Post("/register", register)
			auth.Post("/login", login)
			auth.Post("/logout", logout)
			auth.Get("/me", authRequired, getMe)
			auth.Post("/change-password", authRequired, changePassword)
			auth.Post("/forgot-password", forgotPassword)
			auth.Post("/reset-password", resetPassword)
		}

		posts := api.Group("/posts")
		{
			posts.Get("/", listPost)
			posts.Get("/:postId", getPost)
			posts.Post("/", authRequired, createPost)
			posts.Put("/:postId", authRequired, editPost)
			posts.Delete("/:postId", authRequired, deletePost)

			posts.Post("/:postId/like", authRequired, likePost)
			posts.Post("/:postId/repost", authRequired, repostPost)

			posts.Get("/:postId/comments", listComments)
			posts.Post("/:postId/comments", authRequired, createComment)
		}

		users := api.Group("/users")
		{
			users.Post("/me/bio", authRequired, updateBio)
			users.Post("/me/level", authRequired, updateLevel)
			users.Post("/me/avatar", authRequired, updateAvatar)

			users.Get("/:name", getUserinfo)
			users.Get("/:name/posts", listUserPosts)
			users.Get("/:name/reposts", listUserReposts)
			users.Get("/:name/followers", listFollowers)
			users.Get("/:name/following", listFollowing)
			users.Post("/:name/follow", authRequired, followUser)
			users.Post("/:name/unfollow", authRequired, unfollowUser)
		}

		api.Get("/notifications", authRequired, listNotifications)

		messages := api.Group("/messages", authRequired)
		{
			messages.Get("/", listConversations)
			messages.Get("/:name", openThread)
			messages.Post("/:name", sendMessage)
		}
	}
}

func authRequired(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "you need to be logged in")
	}
	return c.Next()
}
