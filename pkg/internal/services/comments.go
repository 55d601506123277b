package services

import (
	"strings"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
)

func NewComment(user models.Account, postID uint, content string) (models.Comment, error) {
	var comment models.Comment

	content = strings.TrimSpace(content)
	if len(content) == 0 {
		return comment, ErrEmptyComment
	}

	var post models.Post
	if err := database.C.Where("id = ?", postID).First(&post).Error; err != nil {
		return comment, err
	}

	comment = models.Comment{
		Content:  content,
		PostID:   post.ID,
		AuthorID: user.ID,
	}
	if err := database.C.Create(&comment).Error; err != nil {
		return comment, err
	}

	return comment, nil
}

func ListComments(postID uint, take int, offset int) ([]models.Comment, error) {
	if take > 100 {
		take = 100
	}

	var comments []models.Comment
	if err := database.C.
		Where("post_id = ?", postID).
		Limit(take).Offset(offset).
		Order("created_at ASC").
		Preload("Author").
		Find(&comments).Error; err != nil {
		return comments, err
	}

	return comments, nil
}
