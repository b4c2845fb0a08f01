package handlers

import (
	"contribution-hub/app/server/constants"
	"contribution-hub/app/server/models"
	"contribution-hub/app/server/types"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func articleBody(title string) map[string]any {
	return map[string]any{
		"title":    title,
		"body":     "<p>Hello</p>",
		"language": "en",
		"category": "development",
		"tags":     []string{"Go", "go", " api "},
	}
}

func TestArticleCreate(t *testing.T) {
	te := newTestEnv(t)
	alice := te.createUser("alice", "")

	rec := te.do(http.MethodPost, "/v1/article", articleBody("Article Title"), te.token(alice))
	expectStatus(t, rec, http.StatusOK)
	if got := rec.Body.String(); got != "alice/article-title" {
		t.Fatalf("got %q", got)
	}

	// 同名文章加序号
	rec = te.do(http.MethodPost, "/v1/article", articleBody("Article Title"), te.token(alice))
	expectStatus(t, rec, http.StatusOK)
	if got := rec.Body.String(); got != "alice/article-title-2" {
		t.Fatalf("got %q", got)
	}

	// 其他作者不受影响
	bob := te.createUser("bob", "")
	rec = te.do(http.MethodPost, "/v1/article", articleBody("Article Title"), te.token(bob))
	if got := rec.Body.String(); got != "bob/article-title" {
		t.Fatalf("got %q", got)
	}

	rec = te.do(http.MethodGet, "/v1/article/alice/article-title", nil, "")
	expectStatus(t, rec, http.StatusOK)
	info := decode[types.ArticleInfo](t, rec)
	if info.Author.Username != "alice" || info.Language != "en" || info.Category != "development" {
		t.Errorf("unexpected article %+v", info)
	}
	if fmt.Sprint(info.Tags) != "[go api]" {
		t.Errorf("tags %v", info.Tags)
	}

	expectError(t, te.do(http.MethodPost, "/v1/article", articleBody("Article Title"), ""), http.StatusUnauthorized, constants.MsgNotAllowed)
}

func TestArticleCreateValidation(t *testing.T) {
	te := newTestEnv(t)
	alice := te.createUser("alice", "")

	body := articleBody("Bonjour")
	body["language"] = "xx"
	expectError(t, te.do(http.MethodPost, "/v1/article", body, te.token(alice)), http.StatusUnprocessableEntity, constants.MsgLanguageNotSupported)

	body = articleBody("   ")
	rec := te.do(http.MethodPost, "/v1/article", body, te.token(alice))
	expectError(t, rec, http.StatusBadRequest, constants.MsgValidationError)
	if fields := decode[types.ErrorMessage](t, rec).Fields; fields["title"] == "" {
		t.Errorf("missing title error: %v", fields)
	}

	body = articleBody("No body")
	delete(body, "body")
	expectError(t, te.do(http.MethodPost, "/v1/article", body, te.token(alice)), http.StatusBadRequest, constants.MsgValidationError)

	var count int64
	te.db.Model(&models.Article{}).Count(&count)
	if count != 0 {
		t.Errorf("%d articles created", count)
	}
}

func TestArticleSanitizesBody(t *testing.T) {
	te := newTestEnv(t)
	alice := te.createUser("alice", "")

	body := articleBody("Unsafe")
	body["body"] = `<p onclick="steal()">Hello</p><script>alert(1)</script><a href="javascript:alert(1)">x</a>`
	expectStatus(t, te.do(http.MethodPost, "/v1/article", body, te.token(alice)), http.StatusOK)

	info := decode[types.ArticleInfo](t, te.do(http.MethodGet, "/v1/article/alice/unsafe", nil, ""))
	for _, bad := range []string{"<script", "onclick", "javascript:"} {
		if strings.Contains(info.Body, bad) {
			t.Errorf("body still contains %q: %s", bad, info.Body)
		}
	}
	if !strings.Contains(info.Body, "<p>Hello</p>") {
		t.Errorf("body lost safe markup: %s", info.Body)
	}
}

func TestArticleUpdate(t *testing.T) {
	te := newTestEnv(t)
	alice := te.createUser("alice", "")
	bob := te.createUser("bob", "")
	article := te.createArticle(alice, "First Draft", "<p>draft</p>")
	path := fmt.Sprintf("/v1/article/%d", article.ID)

	body := articleBody("Final Version")
	body["tags"] = []string{"release"}

	expectError(t, te.do(http.MethodPost, path, body, te.token(bob)), http.StatusUnauthorized, constants.MsgNotAllowed)

	var stored models.Article
	te.db.First(&stored, article.ID)
	if stored.Title != "First Draft" {
		t.Fatalf("article changed by non-author: %+v", stored)
	}

	rec := te.do(http.MethodPost, path, body, te.token(alice))
	expectStatus(t, rec, http.StatusOK)
	if got := rec.Body.String(); got != "alice/final-version" {
		t.Fatalf("got %q", got)
	}

	expectError(t, te.do(http.MethodGet, "/v1/article/alice/first-draft", nil, ""), http.StatusUnprocessableEntity, constants.MsgDocumentDoesNotExist)
	info := decode[types.ArticleInfo](t, te.do(http.MethodGet, "/v1/article/alice/final-version", nil, ""))
	if info.ID != article.ID || fmt.Sprint(info.Tags) != "[release]" {
		t.Errorf("unexpected article %+v", info)
	}

	// 标题不变时 slug 不变
	body["body"] = "<p>edited</p>"
	rec = te.do(http.MethodPost, path, body, te.token(alice))
	if got := rec.Body.String(); got != "alice/final-version" {
		t.Fatalf("got %q", got)
	}

	expectError(t, te.do(http.MethodPost, "/v1/article/9999", body, te.token(alice)), http.StatusUnprocessableEntity, constants.MsgDocumentDoesNotExist)
	expectError(t, te.do(http.MethodPost, "/v1/article/abc", body, te.token(alice)), http.StatusUnprocessableEntity, constants.MsgDocumentDoesNotExist)

	body["language"] = "xx"
	expectError(t, te.do(http.MethodPost, path, body, te.token(alice)), http.StatusUnprocessableEntity, constants.MsgLanguageNotSupported)
}

func TestArticleGetForEdit(t *testing.T) {
	te := newTestEnv(t)
	alice := te.createUser("alice", "")
	bob := te.createUser("bob", "")
	te.createArticle(alice, "Mine", "<p>mine</p>")

	expectError(t, te.do(http.MethodGet, "/v1/article/alice/mine/edit", nil, te.token(bob)), http.StatusUnauthorized, constants.MsgNotAllowed)
	expectError(t, te.do(http.MethodGet, "/v1/article/alice/mine/edit", nil, ""), http.StatusUnauthorized, constants.MsgNotAllowed)

	rec := te.do(http.MethodGet, "/v1/article/alice/mine/edit", nil, te.token(alice))
	expectStatus(t, rec, http.StatusOK)
	if info := decode[types.ArticleInfo](t, rec); info.Body != "<p>mine</p>" {
		t.Errorf("unexpected body %q", info.Body)
	}

	expectError(t, te.do(http.MethodGet, "/v1/article/alice/missing/edit", nil, te.token(alice)), http.StatusUnprocessableEntity, constants.MsgDocumentDoesNotExist)
}

func TestArticleHiddenWithDeletedAuthor(t *testing.T) {
	te := newTestEnv(t)
	alice := te.createUser("alice", "")
	te.createArticle(alice, "Orphan", "<p>text</p>")

	expectStatus(t, te.do(http.MethodGet, "/v1/article/alice/orphan", nil, ""), http.StatusOK)
	expectStatus(t, te.do(http.MethodPost, "/v1/user/alice/delete", nil, te.token(alice)), http.StatusOK)
	expectError(t, te.do(http.MethodGet, "/v1/article/alice/orphan", nil, ""), http.StatusUnprocessableEntity, constants.MsgDocumentDoesNotExist)
}
