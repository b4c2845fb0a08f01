package utils

import (
	"golang.org/x/net/html"
	"strings"
	"unicode"
)

// Excerpt 去掉正文中的标签，合并空白，截取最多 n 个字符
func Excerpt(body string, n int) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(body))

	skip := 0 // script / style 里的内容不算正文
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF 或者是残缺的输入，都只返回已经读到的部分
			return truncate(collapse(sb.String()), n)
		case html.StartTagToken:
			if isRawTag(z) {
				skip++
			}
			sb.WriteByte(' ')
		case html.EndTagToken:
			if isRawTag(z) && skip > 0 {
				skip--
			}
			sb.WriteByte(' ')
		case html.SelfClosingTagToken:
			sb.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				// Text 会解码实体，&lt; 之类解码后不能再变回标签
				markupChars.WriteString(&sb, string(z.Text()))
			}
		}
	}
}

var markupChars = strings.NewReplacer("<", " ", ">", " ")

func isRawTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}

	count := 0
	for i := range s {
		if count == n {
			return strings.TrimRightFunc(s[:i], unicode.IsSpace)
		}
		count++
	}
	return s
}
