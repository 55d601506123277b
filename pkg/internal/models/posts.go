package models

import "time"

type Post struct {
	BaseModel

	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Language string  `json:"language"`
	Level    string  `json:"level"`
	Image    *string `json:"image"`

	// ContentLanguage is the detected natural language of the body, not the
	// programming language tag above.
	ContentLanguage string `json:"content_language"`

	IsPublished bool `json:"is_published"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`

	Comments []Comment `json:"comments"`
	Likes    []Like    `json:"likes"`
	Reposts  []Repost  `json:"reposts"`

	Metric PostMetric `json:"metric" gorm:"-"`
}

type PostMetric struct {
	LikeCount    int64 `json:"like_count"`
	RepostCount  int64 `json:"repost_count"`
	CommentCount int64 `json:"comment_count"`
}

// Like rows are hard-deleted on toggle-off; the composite index enforces the
// one-like-per-author rule at the storage layer.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	PostID   uint `json:"post_id" gorm:"uniqueIndex:idx_post_like"`
	AuthorID uint `json:"author_id" gorm:"uniqueIndex:idx_post_like"`
}

type Repost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	PostID   uint `json:"post_id" gorm:"uniqueIndex:idx_post_repost"`
	AuthorID uint `json:"author_id" gorm:"uniqueIndex:idx_post_repost"`

	Post Post `json:"post"`
}
