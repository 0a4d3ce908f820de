package model

import (
	"strings"
	"time"
)

// User 由 OAuth 登录侧写入，id 为提供方 subject
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(64)"`
	Name      string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(255);uniqueIndex:idx_email"`
	AvatarURL string `gorm:"type:varchar(500)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

// Username 用户名不落库，取邮箱 @ 前缀
func (u *User) Username() string {
	if i := strings.IndexByte(u.Email, '@'); i >= 0 {
		return u.Email[:i]
	}
	return u.Email
}
