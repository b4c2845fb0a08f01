package models

import "time"

type Vote struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	ObjRef string `gorm:"column:obj_ref;uniqueIndex:idx_vote_user_target"`
	ObjID  uint   `gorm:"column:obj_id;uniqueIndex:idx_vote_user_target"`
	UserID uint   `gorm:"column:user_id;uniqueIndex:idx_vote_user_target"`
	Dir    int    `gorm:"column:dir"` // 1 或 -1
}
