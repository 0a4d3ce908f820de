package dto

import "time"

// LoginDTO OAuth 侧换取会话时携带的已验证用户资料
type LoginDTO struct {
	Subject   string `json:"subject" binding:"required"`
	Email     string `json:"email" binding:"required" validate:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// UserDTO 用户资料
type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
