package constants

// 可以被评论、投票、打赏的对象类型
const (
	ObjRefArticles = "articles"
	ObjRefComments = "comments"
)

// 文章支持的语言
var SupportedLanguages = []string{"en", "fr", "es", "de", "it", "pt", "ru", "ko", "ja", "pl", "nl", "tr"}

const (
	ExcerptLength    = 250    // 搜索结果中正文摘要的最大长度（字符）
	CommentBodyMax   = 250000 // 评论正文最大长度
	DefaultSearchKey = "-createdAt"
)

// 文章搜索允许的排序方式
var ArticleSortColumns = map[string]string{
	"createdAt":  "created_at ASC",
	"-createdAt": "created_at DESC",
	"upVotes":    "up_votes ASC",
	"-upVotes":   "up_votes DESC",
	"title":      "title ASC",
	"-title":     "title DESC",
}
