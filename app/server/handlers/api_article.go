package handlers

import (
	"context"
	"contribution-hub/app/server/constants"
	"contribution-hub/app/server/middlewares"
	"contribution-hub/app/server/models"
	"contribution-hub/app/server/types"
	"contribution-hub/app/server/utils"
	"errors"
	"fmt"
	"github.com/gosimple/slug"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
	"slices"
	"strings"
)

func articleInfo(article *models.Article) *types.ArticleInfo {
	return &types.ArticleInfo{
		ID: article.ID,
		Author: types.UserBrief{
			Username:  article.Author.Username,
			AvatarURL: article.Author.AvatarURL,
		},
		Title:     article.Title,
		Slug:      article.Slug,
		Body:      article.Body,
		Language:  article.Lang,
		Category:  article.Category,
		Tags:      article.TagNames(),
		Project:   article.Project,
		UpVotes:   article.UpVotes,
		DownVotes: article.DownVotes,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
}

func articleTags(tags []string) []models.ArticleTag {
	var res []models.ArticleTag
	seen := map[string]bool{}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		res = append(res, models.ArticleTag{Tag: tag})
	}
	return res
}

// uniqueSlug 根据标题生成同一作者下不重复的 slug ，已删除的文章也算
func (a *App) uniqueSlug(ctx context.Context, authorID uint, title string, excludeID uint) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "article"
	}

	var taken []string
	if err := a.db.WithContext(ctx).Unscoped().Model(&models.Article{}).
		Where("author_id = ? AND id <> ?", authorID, excludeID).
		Where("slug = ? OR slug LIKE ? ESCAPE '\\'", base, escapeLike(base+"-")+"%").
		Pluck("slug", &taken).Error; err != nil {
		return "", err
	}

	candidate := base
	for i := 2; slices.Contains(taken, candidate); i++ {
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return candidate, nil
}

func (a *App) ArticleCreate(c echo.Context) error {
	jwtUser, ok := middlewares.JWTUser(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	var req types.ArticleInput
	if err := a.bind(c, &req); err != nil {
		return a.erv(c, err)
	}
	if !slices.Contains(constants.SupportedLanguages, req.Language) {
		return a.er(c, http.StatusUnprocessableEntity, constants.MsgLanguageNotSupported)
	}

	articleSlug, err := a.uniqueSlug(rctx, jwtUser.ID, req.Title, 0)
	if err != nil {
		a.l.Error("failed to generate slug", zap.Uint("author", jwtUser.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	article := models.Article{
		AuthorID: jwtUser.ID,
		Slug:     articleSlug,
		Title:    strings.TrimSpace(req.Title),
		Body:     a.policy.Sanitize(req.Body),
		Lang:     req.Language,
		Category: strings.TrimSpace(req.Category),
		Project:  strings.TrimSpace(req.Project),
		Tags:     articleTags(req.Tags),
	}
	if err = a.db.WithContext(rctx).Create(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return a.er(c, http.StatusConflict, http.StatusText(http.StatusConflict))
		}
		a.l.Error("failed to create article", zap.Uint("author", jwtUser.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.String(http.StatusOK, jwtUser.Username+"/"+article.Slug)
}

func (a *App) ArticleUpdate(c echo.Context) error {
	jwtUser, ok := middlewares.JWTUser(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return a.er(c, http.StatusUnprocessableEntity)
	}

	rctx := c.Request().Context()

	var req types.ArticleInput
	if err = a.bind(c, &req); err != nil {
		return a.erv(c, err)
	}
	if !slices.Contains(constants.SupportedLanguages, req.Language) {
		return a.er(c, http.StatusUnprocessableEntity, constants.MsgLanguageNotSupported)
	}

	var article models.Article
	if err = a.db.WithContext(rctx).First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusUnprocessableEntity)
		}
		a.l.Error("failed to get article", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if article.AuthorID != jwtUser.ID {
		return a.er(c, http.StatusUnauthorized)
	}

	// 标题变了 slug 也跟着变
	title := strings.TrimSpace(req.Title)
	if title != article.Title {
		if article.Slug, err = a.uniqueSlug(rctx, article.AuthorID, title, article.ID); err != nil {
			a.l.Error("failed to generate slug", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	if err = a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&article).Updates(map[string]any{
			"slug":     article.Slug,
			"title":    title,
			"body":     a.policy.Sanitize(req.Body),
			"lang":     req.Language,
			"category": strings.TrimSpace(req.Category),
			"project":  strings.TrimSpace(req.Project),
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("article_id = ?", article.ID).Delete(&models.ArticleTag{}).Error; err != nil {
			return err
		}
		if tags := articleTags(req.Tags); len(tags) > 0 {
			for i := range tags {
				tags[i].ArticleID = article.ID
			}
			return tx.Create(&tags).Error
		}
		return nil
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return a.er(c, http.StatusConflict, http.StatusText(http.StatusConflict))
		}
		a.l.Error("failed to update article", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.String(http.StatusOK, jwtUser.Username+"/"+article.Slug)
}

func (a *App) findArticle(ctx context.Context, username string, articleSlug string) (*models.Article, error, int) {
	var article models.Article
	author := a.db.WithContext(ctx).Model(&models.User{}).Select("id").
		Where("username = ? AND status = ?", username, models.UserStatusActive)
	if err := a.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("author_id IN (?)", author).
		First(&article, "slug = ?", articleSlug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err, http.StatusUnprocessableEntity
		}
		a.l.Error("failed to get article", zap.String("username", username), zap.String("slug", articleSlug), zap.Error(err))
		return nil, err, http.StatusInternalServerError
	}

	return &article, nil, http.StatusOK
}

func (a *App) ArticleGet(c echo.Context) error {
	rctx := c.Request().Context()

	article, err, statusCode := a.findArticle(rctx, c.Param("username"), c.Param("slug"))
	if err != nil {
		return a.er(c, statusCode)
	}

	return c.JSON(http.StatusOK, articleInfo(article))
}

// ArticleGetForEdit 和 ArticleGet 一样，但只有作者本人可以访问
func (a *App) ArticleGetForEdit(c echo.Context) error {
	username, err, statusCode := a.ownerOnly(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	article, err, statusCode := a.findArticle(rctx, username, c.Param("slug"))
	if err != nil {
		return a.er(c, statusCode)
	}

	return c.JSON(http.StatusOK, articleInfo(article))
}
