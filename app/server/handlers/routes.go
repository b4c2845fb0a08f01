package handlers

import (
	"contribution-hub/app/server/constants"
	"contribution-hub/app/server/middlewares"
	"github.com/labstack/echo/v4"
)

func (a *App) Register(e *echo.Echo) {
	e.GET("/healthz", a.HealthCheck)

	user := middlewares.Auth(a.jwt, a.l, constants.ScopeUser)
	optional := middlewares.OptionalAuth(a.jwt, a.l)
	signup := middlewares.SignupAuth(a.jwt, a.l)

	v1 := e.Group("/v1")

	// 登录
	v1.POST("/auth/github", a.AuthGitHub)
	v1.POST("/auth/refresh", a.AuthRefresh)
	v1.POST("/auth/revoke", a.AuthRevoke)

	// 用户
	v1.POST("/user", a.UserSignup, signup)
	v1.GET("/me", a.UserMe, user)
	v1.GET("/user/:username", a.UserGet)
	v1.GET("/user/:username/available", a.UserAvailable)
	v1.GET("/users/:partial/:count", a.UserSearch)
	v1.POST("/user/:username", a.UserEdit, user)
	v1.POST("/user/:username/delete", a.UserDelete, user)
	v1.POST("/user/:username/blockchainAccount", a.UserLinkBlockchainAccount, user)

	// 文章
	v1.POST("/article", a.ArticleCreate, user)
	v1.POST("/article/:id", a.ArticleUpdate, user)
	v1.GET("/article/:username/:slug", a.ArticleGet)
	v1.GET("/article/:username/:slug/edit", a.ArticleGetForEdit, user)
	v1.POST("/articles/search", a.ArticleSearch, optional)

	// 投票
	v1.POST("/vote", a.VoteCast, user)

	// 评论
	v1.POST("/comment", a.CommentCreate, user)
	v1.GET("/comment/:objRef/:objId", a.CommentList)
	v1.POST("/comment/:id", a.CommentUpdate, user)
	v1.POST("/comment/:id/delete", a.CommentDelete, user)

	// 打赏
	v1.GET("/tip/:obj/:id/author", a.TipAuthorInfo)
	v1.POST("/tip", a.TipCreate, user)
}
