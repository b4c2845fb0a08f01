package handlers

import (
	"contribution-hub/app/server/constants"
	"contribution-hub/app/server/middlewares"
	"contribution-hub/app/server/models"
	"contribution-hub/app/server/types"
	"contribution-hub/app/server/utils"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

func (a *App) ArticleSearch(c echo.Context) error {
	rctx := c.Request().Context()

	var req types.ArticleSearchInput
	if err := a.bind(c, &req); err != nil {
		return a.erv(c, err)
	}

	// 已删除用户的文章不出现在结果里，和按 slug 读取时一致
	activeAuthors := a.db.WithContext(rctx).Model(&models.User{}).Select("id").Where("status = ?", models.UserStatusActive)
	query := a.db.WithContext(rctx).Model(&models.Article{}).Preload("Author").Preload("Tags").
		Where("author_id IN (?)", activeAuthors)
	if req.Title != "" {
		query = query.Where("LOWER(title) LIKE ? ESCAPE '\\'", likePattern(strings.ToLower(req.Title)))
	}
	if len(req.Categories) > 0 {
		query = query.Where("category IN ?", req.Categories)
	}
	if len(req.Languages) > 0 {
		query = query.Where("lang IN ?", req.Languages)
	}
	if req.Project != "" {
		query = query.Where("project = ?", req.Project)
	}
	if len(req.Tags) > 0 {
		tags := make([]string, 0, len(req.Tags))
		for _, tag := range req.Tags {
			tags = append(tags, strings.ToLower(strings.TrimSpace(tag)))
		}
		query = query.Where("id IN (?)", a.db.WithContext(rctx).Model(&models.ArticleTag{}).Select("article_id").Where("tag IN ?", tags))
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = constants.DefaultSearchKey
	}

	var articles []models.Article
	if err := query.
		Order(constants.ArticleSortColumns[sortBy]).
		Order("id DESC").
		Limit(req.Limit).
		Offset(req.Skip).
		Find(&articles).Error; err != nil {
		a.l.Error("failed to search articles", zap.Any("request", req), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 登录用户一次查出所有结果上的投票
	var userVotes map[uint]int
	if jwtUser, ok := middlewares.JWTUser(c); ok && len(articles) > 0 {
		ids := make([]uint, 0, len(articles))
		for _, article := range articles {
			ids = append(ids, article.ID)
		}

		var votes []models.Vote
		if err := a.db.WithContext(rctx).
			Where("obj_ref = ? AND user_id = ? AND obj_id IN ?", constants.ObjRefArticles, jwtUser.ID, ids).
			Find(&votes).Error; err != nil {
			a.l.Error("failed to get votes", zap.Uint("user", jwtUser.ID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}

		userVotes = make(map[uint]int, len(votes))
		for _, vote := range votes {
			userVotes[vote.ObjID] = vote.Dir
		}
	}

	res := []types.ArticleSearchResult{}
	for _, article := range articles {
		result := types.ArticleSearchResult{
			ID: article.ID,
			Author: types.UserBrief{
				Username:  article.Author.Username,
				AvatarURL: article.Author.AvatarURL,
			},
			Title:     article.Title,
			Slug:      article.Slug,
			Body:      utils.Excerpt(article.Body, constants.ExcerptLength),
			Tags:      article.TagNames(),
			UpVotes:   article.UpVotes,
			CreatedAt: article.CreatedAt,
		}
		if dir, ok := userVotes[article.ID]; ok {
			result.UserVote = utils.P(dir)
		}
		res = append(res, result)
	}

	return c.JSON(http.StatusOK, res)
}
