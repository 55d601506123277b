package models

import "time"

type AccountRole = string

const (
	RoleUser  = AccountRole("user")
	RoleAdmin = AccountRole("admin")
)

const (
	LevelBeginner     = "beginner"
	LevelJunior       = "junior"
	LevelIntermediate = "intermediate"
	LevelSenior       = "senior"
)

type Account struct {
	BaseModel

	Name     string      `json:"name" gorm:"uniqueIndex"`
	Email    string      `json:"email" gorm:"uniqueIndex"`
	Password []byte      `json:"-"`
	Role     AccountRole `json:"role" gorm:"default:user"`
	Level    string      `json:"level"`
	Gender   string      `json:"gender"`
	Bio      string      `json:"bio"`
	Avatar   string      `json:"avatar"`

	Posts    []Post    `json:"posts" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"comments" gorm:"foreignKey:AuthorID"`
}

func (v Account) IsAdmin() bool {
	return v.Role == RoleAdmin
}

// PasswordResetToken is a server-side, expiring credential for the forgot
// password flow. Expired rows are swept by the cleanup task.
type PasswordResetToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Token     string    `json:"-" gorm:"uniqueIndex"`
	ExpiresAt time.Time `json:"expires_at"`

	AccountID uint    `json:"account_id"`
	Account   Account `json:"account"`
}
