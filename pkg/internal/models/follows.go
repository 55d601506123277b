package models

import "time"

// Follow is a directional edge in the follow graph. A mutual relationship is
// two edges, one in each direction. Rows are hard-deleted on unfollow so the
// composite index stays a strict uniqueness guarantee.
type Follow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	FollowerID  uint `json:"follower_id" gorm:"uniqueIndex:idx_follow_pair"`
	FollowingID uint `json:"following_id" gorm:"uniqueIndex:idx_follow_pair"`

	Follower  Account `json:"follower"`
	Following Account `json:"following"`
}
