package handlers

import (
	"context"
	"contribution-hub/app/server/constants"
	"contribution-hub/app/server/middlewares"
	"contribution-hub/app/server/models"
	"contribution-hub/app/server/types"
	"contribution-hub/app/server/utils"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
	"strings"
)

func commentInfo(comment *models.Comment) types.CommentInfo {
	return types.CommentInfo{
		ID:     comment.ID,
		ObjRef: comment.ObjRef,
		ObjID:  comment.ObjID,
		Author: types.UserBrief{
			Username:  comment.Author.Username,
			AvatarURL: comment.Author.AvatarURL,
		},
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// bindCommentBody 正文先去掉首尾空白再校验长度
func (a *App) bindCommentBody(c echo.Context, req any, body *string) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	*body = strings.TrimSpace(*body)
	return c.Validate(req)
}

// authorComment 取出评论，并确认是当前用户写的
func (a *App) authorComment(ctx context.Context, c echo.Context) (*models.Comment, error, int) {
	jwtUser, ok := middlewares.JWTUser(c)
	if !ok {
		return nil, errors.New("missing user"), http.StatusUnauthorized
	}

	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return nil, err, http.StatusUnprocessableEntity
	}

	var comment models.Comment
	if err = a.db.WithContext(ctx).Preload("Author").First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err, http.StatusUnprocessableEntity
		}
		a.l.Error("failed to get comment", zap.Uint("id", id), zap.Error(err))
		return nil, err, http.StatusInternalServerError
	}

	if comment.AuthorID != jwtUser.ID {
		return nil, errors.New("not the author"), http.StatusUnauthorized
	}

	return &comment, nil, http.StatusOK
}

func (a *App) CommentCreate(c echo.Context) error {
	jwtUser, ok := middlewares.JWTUser(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	var req types.CommentInput
	if err := a.bindCommentBody(c, &req, &req.Body); err != nil {
		return a.erv(c, err)
	}

	if _, _, err, statusCode := a.findObject(rctx, req.ObjRef, req.ObjID); err != nil {
		return a.er(c, statusCode)
	}

	comment := models.Comment{
		ObjRef:   req.ObjRef,
		ObjID:    req.ObjID,
		AuthorID: jwtUser.ID,
		Body:     a.policy.Sanitize(req.Body),
	}
	if err := a.db.WithContext(rctx).Create(&comment).Error; err != nil {
		a.l.Error("failed to create comment", zap.String("objRef", req.ObjRef), zap.Uint("objId", req.ObjID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if err := a.db.WithContext(rctx).First(&comment.Author, "id = ?", jwtUser.ID).Error; err != nil {
		a.l.Error("failed to get comment author", zap.Uint("id", jwtUser.ID), zap.Error(err))
	}

	return c.JSON(http.StatusOK, commentInfo(&comment))
}

func (a *App) CommentList(c echo.Context) error {
	rctx := c.Request().Context()

	var req types.CommentListParams
	if err := a.bind(c, &req); err != nil {
		return a.erv(c, err)
	}

	if _, _, err, statusCode := a.findObject(rctx, req.ObjRef, req.ObjID); err != nil {
		return a.er(c, statusCode)
	}

	var comments []models.Comment
	if err := a.db.WithContext(rctx).
		Preload("Author").
		Where("obj_ref = ? AND obj_id = ?", req.ObjRef, req.ObjID).
		Order("created_at ASC").
		Order("id ASC").
		Limit(req.Limit).
		Offset(req.Skip).
		Find(&comments).Error; err != nil {
		a.l.Error("failed to list comments", zap.String("objRef", req.ObjRef), zap.Uint("objId", req.ObjID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	res := []types.CommentInfo{}
	for _, comment := range comments {
		res = append(res, commentInfo(&comment))
	}

	return c.JSON(http.StatusOK, res)
}

func (a *App) CommentUpdate(c echo.Context) error {
	rctx := c.Request().Context()

	comment, err, statusCode := a.authorComment(rctx, c)
	if err != nil {
		return a.er(c, statusCode)
	}

	var req types.CommentUpdateInput
	if err = a.bindCommentBody(c, &req, &req.Body); err != nil {
		return a.erv(c, err)
	}

	comment.Body = a.policy.Sanitize(req.Body)
	if err = a.db.WithContext(rctx).Model(comment).Update("body", comment.Body).Error; err != nil {
		a.l.Error("failed to update comment", zap.Uint("id", comment.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, commentInfo(comment))
}

func (a *App) CommentDelete(c echo.Context) error {
	rctx := c.Request().Context()

	comment, err, statusCode := a.authorComment(rctx, c)
	if err != nil {
		return a.er(c, statusCode)
	}

	if err = a.db.WithContext(rctx).Delete(comment).Error; err != nil {
		a.l.Error("failed to delete comment", zap.Uint("id", comment.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &types.Message{Message: constants.MsgDeleteSuccess})
}
