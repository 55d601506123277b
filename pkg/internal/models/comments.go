package models

type Comment struct {
	BaseModel

	Content string `json:"content"`

	PostID   uint    `json:"post_id"`
	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`
}
