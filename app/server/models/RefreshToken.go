package models

import "time"

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`

	UserID    uint      `gorm:"column:user_id;index"`
	Secret    string    `gorm:"column:secret"`           // 使用 argon2id 储存，明文只在签发时返回一次
	ExpiresAt time.Time `gorm:"column:expires_at;index"` // 过期后由 worker 清理
}
