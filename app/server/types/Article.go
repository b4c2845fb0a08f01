package types

import "time"

type ArticleInput struct {
	Title    string   `json:"title" validate:"required,notblank,max=250"`
	Body     string   `json:"body" validate:"required,notblank"`
	Language string   `json:"language" validate:"required"` // 是否支持由接口判断
	Category string   `json:"category" validate:"max=50"`
	Tags     []string `json:"tags" validate:"max=10,dive,notblank,max=50"`
	Project  string   `json:"project" validate:"max=100"`
}

type ArticleInfo struct {
	ID        uint      `json:"id"`
	Author    UserBrief `json:"author"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body"`
	Language  string    `json:"language"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Project   string    `json:"project"`
	UpVotes   int64     `json:"upVotes"`
	DownVotes int64     `json:"downVotes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ArticleSearchInput struct {
	Title      string   `json:"title" validate:"max=250"`
	Categories []string `json:"categories" validate:"max=20,dive,notblank,max=50"`
	Tags       []string `json:"tags" validate:"max=20,dive,notblank,max=50"`
	Languages  []string `json:"languages" validate:"max=20,dive,lang"`
	Project    string   `json:"project" validate:"max=100"`
	SortBy     string   `json:"sortBy" validate:"omitempty,oneof=createdAt -createdAt upVotes -upVotes title -title"`
	Limit      int      `json:"limit" validate:"required,min=1,max=20"`
	Skip       int      `json:"skip" validate:"min=0"`
}

type ArticleSearchResult struct {
	ID        uint      `json:"id"`
	Author    UserBrief `json:"author"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body"` // 纯文本摘要
	Tags      []string  `json:"tags"`
	UpVotes   int64     `json:"upVotes"`
	CreatedAt time.Time `json:"createdAt"`
	UserVote  *int      `json:"userVote,omitempty"`
}
