package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model

	ObjRef   string `gorm:"column:obj_ref;index:idx_comment_target"` // 评论对象的类型
	ObjID    uint   `gorm:"column:obj_id;index:idx_comment_target"`  // 评论对象的 ID
	AuthorID uint   `gorm:"column:author_id;index"`
	Body     string `gorm:"column:body"`

	UpVotes   int64 `gorm:"column:up_votes;default:0"`
	DownVotes int64 `gorm:"column:down_votes;default:0"`

	Author User `gorm:"foreignKey:AuthorID"`
}

func (c *Comment) GetAuthorID() uint {
	return c.AuthorID
}
