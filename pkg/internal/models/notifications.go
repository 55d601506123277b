package models

import "gorm.io/datatypes"

const (
	NotificationKindLike   = "like"
	NotificationKindRepost = "repost"
	NotificationKindFollow = "follow"
)

type Notification struct {
	BaseModel

	Kind     string            `json:"kind"`
	Message  string            `json:"message"`
	IsRead   bool              `json:"is_read"`
	Metadata datatypes.JSONMap `json:"metadata"`

	// AccountID is the recipient; SenderID is nil for system notifications.
	AccountID uint     `json:"account_id"`
	Account   Account  `json:"account"`
	SenderID  *uint    `json:"sender_id"`
	Sender    *Account `json:"sender"`
	PostID    *uint    `json:"post_id"`
}
