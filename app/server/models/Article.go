package models

import "gorm.io/gorm"

type Article struct {
	gorm.Model

	AuthorID uint   `gorm:"column:author_id;uniqueIndex:idx_article_author_slug"` // 作者
	Slug     string `gorm:"column:slug;uniqueIndex:idx_article_author_slug"`      // 由标题生成，同一作者下唯一
	Title    string `gorm:"column:title"`
	Body     string `gorm:"column:body"`
	Lang     string `gorm:"column:lang;index"`
	Category string `gorm:"column:category;index"`
	Project  string `gorm:"column:project;index"`

	// 投票统计，由投票接口维护
	UpVotes   int64 `gorm:"column:up_votes;default:0"`
	DownVotes int64 `gorm:"column:down_votes;default:0"`

	// 连接模型时使用
	Author User         `gorm:"foreignKey:AuthorID"`
	Tags   []ArticleTag `gorm:"foreignKey:ArticleID"`
}

func (a *Article) GetAuthorID() uint {
	return a.AuthorID
}

func (a *Article) TagNames() []string {
	tags := []string{}
	for _, t := range a.Tags {
		tags = append(tags, t.Tag)
	}
	return tags
}

// ArticleTag 单独成表，方便按标签筛选
type ArticleTag struct {
	ID        uint   `gorm:"primaryKey"`
	ArticleID uint   `gorm:"column:article_id;index"`
	Tag       string `gorm:"column:tag;index"`
}
