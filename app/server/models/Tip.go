package models

import "time"

// Tip 只追加，不修改也不删除
type Tip struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`

	// 同一笔链上转账只能记录一次
	ObjRef   string `gorm:"column:obj_ref;uniqueIndex:idx_tip_transfer"`
	ObjID    uint   `gorm:"column:obj_id;uniqueIndex:idx_tip_transfer"`
	UserID   uint   `gorm:"column:user_id;uniqueIndex:idx_tip_transfer"`
	Currency string `gorm:"column:currency;uniqueIndex:idx_tip_transfer"`
	Amount   string `gorm:"column:amount;uniqueIndex:idx_tip_transfer"`
	Data     string `gorm:"column:data;uniqueIndex:idx_tip_transfer"` // 链上交易 ID

	Anonymous bool `gorm:"column:anonymous"`
}
