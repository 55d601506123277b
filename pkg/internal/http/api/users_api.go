package api

import (
	"errors"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/http/exts"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/devlog-ge/devlog-server/pkg/internal/services"
	"github.com/devlog-ge/devlog-server/pkg/internal/storage"
	"github.com/gofiber/fiber/v2"
)

func getUserinfo(c *fiber.Ctx) error {
	account, err := services.GetAccountWithName(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	isFollowing, followsViewer, isMutual := false, false, false
	if viewer, authenticated := c.Locals("user").(models.Account); authenticated && viewer.ID != account.ID {
		isFollowing = services.IsAccountFollowing(viewer, account)
		followsViewer = services.IsAccountFollowing(account, viewer)
		isMutual = isFollowing && followsViewer
	}

	return c.JSON(fiber.Map{
		"account":        account,
		"is_following":   isFollowing,
		"follows_viewer": followsViewer,
		"is_mutual":      isMutual,
	})
}

func listUserPosts(c *fiber.Ctx) error {
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	account, err := services.GetAccountWithName(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	tx := services.FilterPostWithAuthor(database.C, account.ID)

	// Pending posts are only visible on the owner's (or an admin's) own
	// profile view.
	if viewer, authenticated := c.Locals("user").(models.Account); !authenticated ||
		(viewer.ID != account.ID && !viewer.IsAdmin()) {
		tx = services.FilterPostPublished(tx)
	}

	items, err := services.ListPost(tx, take, offset, "created_at DESC")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(items)
}

func listUserReposts(c *fiber.Ctx) error {
	account, err := services.GetAccountWithName(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	items, err := services.ListAccountReposts(account)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(items)
}

func listFollowers(c *fiber.Ctx) error {
	account, err := services.GetAccountWithName(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	followers, err := services.ListFollowers(account)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(followers)
}

func listFollowing(c *fiber.Ctx) error {
	account, err := services.GetAccountWithName(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	following, err := services.ListFollowing(account)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(following)
}

func followUser(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	target, err := services.GetAccountWithName(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	created, err := services.FollowAccount(user, target)
	if err != nil {
		if errors.Is(err, services.ErrSelfFollow) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	message := "followed"
	if !created {
		message = "already following"
	}
	return c.JSON(fiber.Map{
		"following": true,
		"message":   message,
	})
}

func unfollowUser(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	target, err := services.GetAccountWithName(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if _, err := services.UnfollowAccount(user, target); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"following": false})
}

func updateBio(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		Bio string `json:"bio"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.UpdateAccountBio(user, data.Bio)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(account)
}

func updateLevel(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		Level string `json:"level" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.UpdateAccountLevel(user, data.Level)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(account)
}

func updateAvatar(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	header, err := c.FormFile("photo")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "no photo selected")
	}

	src, err := header.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	defer src.Close()

	url, err := storage.UploadImage(c.Context(), "avatars", header.Filename, src, header.Size)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedMediaType) {
			return fiber.NewError(fiber.StatusUnsupportedMediaType, err.Error())
		}
		if errors.Is(err, storage.ErrPayloadTooLarge) {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	account, err := services.UpdateAccountAvatar(user, url)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(account)
}
