package api

import (
	"errors"
	"strings"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/devlog-ge/devlog-server/pkg/internal/services"
	"github.com/devlog-ge/devlog-server/pkg/internal/storage"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func universalPostFilter(c *fiber.Ctx, tx *gorm.DB) (*gorm.DB, error) {
	tx = services.FilterPostPublished(tx)

	if len(c.Query("q")) > 0 {
		tx = services.FilterPostWithFuzzySearch(tx, c.Query("q"))
	}
	if len(c.Query("language")) > 0 {
		tx = services.FilterPostWithLanguage(tx, c.Query("language"))
	}
	if len(c.Query("level")) > 0 {
		tx = services.FilterPostWithLevel(tx, c.Query("level"))
	}

	if len(c.Query("author")) > 0 {
		author, err := services.GetAccountWithName(c.Query("author"))
		if err != nil {
			return tx, fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		tx = services.FilterPostWithAuthor(tx, author.ID)
	}

	return tx, nil
}

func listPost(c *fiber.Ctx) error {
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	tx, err := universalPostFilter(c, database.C)
	if err != nil {
		return err
	}

	count, err := services.CountPost(tx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items, err := services.ListPost(tx, take, offset, "created_at DESC")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func getPost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid post id")
	}

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	var viewer *models.Account
	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		viewer = &user
	}
	if !services.IsPostVisibleFor(item, viewer) {
		return fiber.NewError(fiber.StatusNotFound, "record not found")
	}

	return c.JSON(item)
}

func uploadPostImage(c *fiber.Ctx) (*string, error) {
	header, err := c.FormFile("photo")
	if err != nil || header == nil {
		return nil, nil
	}

	src, err := header.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	defer src.Close()

	url, err := storage.UploadImage(c.Context(), "posts", header.Filename, src, header.Size)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedMediaType) {
			return nil, fiber.NewError(fiber.StatusUnsupportedMediaType, err.Error())
		}
		if errors.Is(err, storage.ErrPayloadTooLarge) {
			return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, err.Error())
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return &url, nil
}

func createPost(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	image, err := uploadPostImage(c)
	if err != nil {
		return err
	}

	item, err := services.NewPost(user, models.Post{
		Title:    c.FormValue("title"),
		Content:  c.FormValue("content"),
		Language: c.FormValue("language"),
		Level:    c.FormValue("level"),
		Image:    image,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func editPost(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	id, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid post id")
	}

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if item.AuthorID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "you cannot edit this post")
	}

	if image, err := uploadPostImage(c); err != nil {
		return err
	} else if image != nil {
		item.Image = image
	}

	if title := strings.TrimSpace(c.FormValue("title")); len(title) > 0 {
		item.Title = title
	}
	if content := strings.TrimSpace(c.FormValue("content")); len(content) > 0 {
		item.Content = content
	}
	if language := c.FormValue("language"); len(language) > 0 {
		item.Language = language
	}
	if level := c.FormValue("level"); len(level) > 0 {
		item.Level = level
	}

	item, err = services.EditPost(item)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(item)
}

func deletePost(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	id, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid post id")
	}

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if item.AuthorID != user.ID && !user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "you cannot delete this post")
	}

	if err := services.DeletePost(item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}
