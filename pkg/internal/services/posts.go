package services

import (
	"strings"
	"sync"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/pemistahl/lingua-go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

func FilterPostPublished(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_published = ?", true)
}

func FilterPostWithAuthor(tx *gorm.DB, uid uint) *gorm.DB {
	return tx.Where("author_id = ?", uid)
}

func FilterPostWithLanguage(tx *gorm.DB, language string) *gorm.DB {
	return tx.Where("language = ?", language)
}

func FilterPostWithLevel(tx *gorm.DB, level string) *gorm.DB {
	return tx.Where("level = ?", level)
}

func FilterPostWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}

	probe = "%" + strings.ToLower(probe) + "%"
	return tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", probe, probe)
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Author")
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadGeneral(tx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	item.Metric = models.PostMetric{
		LikeCount:    CountPostLikes(item.ID),
		RepostCount:  CountPostReposts(item.ID),
		CommentCount: CountPostComments(item.ID),
	}

	return item, nil
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func CountPostLikes(id uint) int64 {
	var count int64
	if err := database.C.Model(&models.Like{}).
		Where("post_id = ?", id).
		Count(&count).Error; err != nil {
		return 0
	}

	return count
}

func CountPostReposts(id uint) int64 {
	var count int64
	if err := database.C.Model(&models.Repost{}).
		Where("post_id = ?", id).
		Count(&count).Error; err != nil {
		return 0
	}

	return count
}

func CountPostComments(id uint) int64 {
	var count int64
	if err := database.C.Model(&models.Comment{}).
		Where("post_id = ?", id).
		Count(&count).Error; err != nil {
		return 0
	}

	return count
}

func ListPost(tx *gorm.DB, take int, offset int, order any) ([]*models.Post, error) {
	if take > 100 {
		take = 100
	}

	var items []*models.Post
	if err := PreloadGeneral(tx).
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}

	idx := lo.Map(items, func(item *models.Post, index int) uint {
		return item.ID
	})
	if len(idx) == 0 {
		return items, nil
	}

	itemMap := lo.SliceToMap(items, func(item *models.Post) (uint, *models.Post) {
		return item.ID, item
	})

	type metricRow struct {
		PostID uint
		Count  int64
	}

	for model, assign := range map[any]func(post *models.Post, count int64){
		&models.Like{}:    func(post *models.Post, count int64) { post.Metric.LikeCount = count },
		&models.Repost{}:  func(post *models.Post, count int64) { post.Metric.RepostCount = count },
		&models.Comment{}: func(post *models.Post, count int64) { post.Metric.CommentCount = count },
	} {
		var rows []metricRow
		if err := database.C.Model(model).
			Select("post_id, COUNT(id) as count").
			Where("post_id IN ?", idx).
			Group("post_id").
			Scan(&rows).Error; err != nil {
			return items, err
		}
		for _, row := range rows {
			if post, ok := itemMap[row.PostID]; ok {
				assign(post, row.Count)
			}
		}
	}

	return items, nil
}

var contentLanguageDetector = sync.OnceValue(func() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Georgian, lingua.Russian).
		Build()
})

func DetectContentLanguage(content string) string {
	if language, ok := contentLanguageDetector().DetectLanguageOf(content); ok {
		return language.IsoCode639_1().String()
	}
	return ""
}

// NewPost creates an unpublished post; it stays invisible to public listings
// until an administrator approves it.
func NewPost(user models.Account, item models.Post) (models.Post, error) {
	item.Title = strings.TrimSpace(item.Title)
	item.Content = strings.TrimSpace(item.Content)
	if len(item.Title) == 0 || len(item.Content) == 0 {
		return item, ErrPostIncomplete
	}

	item.AuthorID = user.ID
	item.IsPublished = false
	item.ContentLanguage = DetectContentLanguage(item.Content)

	if err := database.C.Create(&item).Error; err != nil {
		return item, err
	}

	log.Debug().Uint("post", item.ID).Uint("author", user.ID).Msg("New post was created, waiting for approval...")
	return item, nil
}

func EditPost(item models.Post) (models.Post, error) {
	item.Title = strings.TrimSpace(item.Title)
	item.Content = strings.TrimSpace(item.Content)
	if len(item.Title) == 0 || len(item.Content) == 0 {
		return item, ErrPostIncomplete
	}

	item.ContentLanguage = DetectContentLanguage(item.Content)

	err := database.C.Save(&item).Error
	return item, err
}

// DeletePost removes the post and every row that references it in a single
// transaction, so no orphan comments, likes, reposts or notifications remain.
func DeletePost(item models.Post) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", item.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", item.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", item.ID).Delete(&models.Repost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", item.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// ApprovePost flips the one-way publication switch. Approving an already
// published post changes nothing.
func ApprovePost(item models.Post) (models.Post, error) {
	if item.IsPublished {
		return item, nil
	}

	item.IsPublished = true
	if err := database.C.Model(&item).Update("is_published", true).Error; err != nil {
		return item, err
	}

	return item, nil
}

func ListPendingPosts() ([]*models.Post, error) {
	var items []*models.Post
	if err := PreloadGeneral(database.C).
		Where("is_published = ?", false).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return items, err
	}
	return items, nil
}

// ListAccountReposts returns the posts an account has reposted, newest
// repost first. Unpublished originals are filtered out.
func ListAccountReposts(user models.Account) ([]models.Post, error) {
	var reposts []models.Repost
	if err := database.C.
		Where("author_id = ?", user.ID).
		Order("created_at DESC").
		Preload("Post").
		Preload("Post.Author").
		Find(&reposts).Error; err != nil {
		return nil, err
	}

	return lo.FilterMap(reposts, func(item models.Repost, index int) (models.Post, bool) {
		return item.Post, item.Post.IsPublished
	}), nil
}

func IsPostVisibleFor(item models.Post, viewer *models.Account) bool {
	if item.IsPublished {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.ID == item.AuthorID || viewer.IsAdmin()
}
