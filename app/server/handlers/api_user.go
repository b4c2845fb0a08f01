package handlers

import (
	"context"
	"contribution-hub/app/server/constants"
	"contribution-hub/app/server/middlewares"
	"contribution-hub/app/server/models"
	"contribution-hub/app/server/types"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"net/http"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义 LIKE 的通配符，查询时配合 ESCAPE '\' 使用
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// likePattern 包含匹配
func likePattern(s string) string {
	return "%" + escapeLike(s) + "%"
}

func userPublic(user *models.User) *types.UserPublic {
	accounts := []types.BlockchainAccountInfo{}
	for _, account := range user.BlockchainAccounts {
		accounts = append(accounts, types.BlockchainAccountInfo{
			Blockchain: account.Blockchain,
			Address:    account.Address,
		})
	}

	return &types.UserPublic{
		Username:           user.Username,
		AvatarURL:          user.AvatarURL,
		Name:               user.Name,
		Bio:                user.Bio,
		Location:           user.Location,
		Website:            user.Website,
		BlockchainAccounts: accounts,
		CreatedAt:          user.CreatedAt,
	}
}

// ownerOnly 只允许用户修改自己的资料
func (a *App) ownerOnly(c echo.Context) (string, error, int) {
	username := c.Param("username")

	jwtUser, ok := middlewares.JWTUser(c)
	if !ok || jwtUser.Username != username {
		return "", fmt.Errorf("acting user is not %s", username), http.StatusUnauthorized
	}

	return username, nil, http.StatusOK
}

func (a *App) clearUserCache(ctx context.Context, username string) {
	if err := a.rdb.Del(ctx, fmt.Sprintf(constants.CacheKeyUserProfile, username)).Err(); err != nil {
		a.l.Error("failed to clear user cache", zap.String("username", username), zap.Error(err))
	}
}

// getUserPublic 先查缓存，没有的话查数据库并写入缓存
func (a *App) getUserPublic(ctx context.Context, username string) (*types.UserPublic, error, int) {
	cacheKey := fmt.Sprintf(constants.CacheKeyUserProfile, username)

	var profile types.UserPublic
	if cacheBytes, err := a.rdb.Get(ctx, cacheKey).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Error("failed to query cache for user profile", zap.String("username", username), zap.Error(err))
		}
	} else if err = json.Unmarshal(cacheBytes, &profile); err != nil {
		a.l.Error("failed to unmarshal user profile", zap.String("username", username), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		// 可能是无效的缓存，清理掉
		a.rdb.Del(ctx, cacheKey)
	} else {
		return &profile, nil, http.StatusOK
	}

	var user models.User
	if err := a.db.WithContext(ctx).Preload("BlockchainAccounts").
		First(&user, "username = ? AND status = ?", username, models.UserStatusActive).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err, http.StatusUnprocessableEntity
		}
		a.l.Error("failed to get user", zap.String("username", username), zap.Error(err))
		return nil, err, http.StatusInternalServerError
	}

	result := userPublic(&user)
	if cacheBytes, err := json.Marshal(result); err != nil {
		a.l.Error("failed to marshal user profile", zap.String("username", username), zap.Error(err))
	} else {
		a.rdb.Set(ctx, cacheKey, cacheBytes, constants.CacheExpireUserProfile)
	}

	return result, nil, http.StatusOK
}

func (a *App) UserSignup(c echo.Context) error {
	signup, ok := middlewares.JWTSignup(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	var req types.UserSignupInput
	if err := a.bind(c, &req); err != nil {
		return a.erv(c, err)
	}

	// 已删除的用户也占用用户名
	var count int64
	if err := a.db.WithContext(rctx).Unscoped().Model(&models.User{}).
		Where("LOWER(username) = ?", strings.ToLower(req.Username)).Count(&count).Error; err != nil {
		a.l.Error("failed to count user", zap.String("username", req.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if count != 0 {
		return a.er(c, http.StatusConflict, constants.MsgUsernameExists)
	}

	sealed, err := a.sealProviderToken(signup.ProviderToken)
	if err != nil {
		a.l.Error("failed to encrypt provider token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	user := models.User{
		Username:  req.Username,
		AvatarURL: req.AvatarURL,
		Scopes:    models.StringArray{constants.ScopeUser},
		Status:    models.UserStatusActive,
		AuthProviders: []models.AuthProvider{{
			Type:     signup.ProviderType,
			Username: signup.ProviderUsername,
			Token:    sealed,
		}},
	}
	if user.AvatarURL == "" {
		user.AvatarURL = signup.AvatarURL
	}

	if err = a.db.WithContext(rctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 同时注册同一个用户名，或者这个 GitHub 账户已经注册过
			return a.er(c, http.StatusConflict, constants.MsgUsernameExists)
		}
		a.l.Error("failed to create user", zap.String("username", user.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	tokens, err := a.generateUserTokens(rctx, &user)
	if err != nil {
		a.l.Error("failed to generate tokens", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &types.Data[types.UserSignupResult]{
		Data: types.UserSignupResult{
			UserPublic: *userPublic(&user),
			Tokens:     *tokens,
		},
	})
}

func (a *App) UserMe(c echo.Context) error {
	jwtUser, ok := middlewares.JWTUser(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	var user models.User
	if err := a.db.WithContext(rctx).Preload("BlockchainAccounts").
		First(&user, "id = ? AND status = ?", jwtUser.ID, models.UserStatusActive).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusUnprocessableEntity)
		}
		a.l.Error("failed to get user", zap.Uint("id", jwtUser.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &types.Data[types.UserSelf]{
		Data: types.UserSelf{
			UserPublic: *userPublic(&user),
			ID:         user.ID,
			Scopes:     user.Scopes,
		},
	})
}

func (a *App) UserGet(c echo.Context) error {
	rctx := c.Request().Context()

	profile, err, statusCode := a.getUserPublic(rctx, c.Param("username"))
	if err != nil {
		return a.er(c, statusCode)
	}

	return c.JSON(http.StatusOK, &types.Data[*types.UserPublic]{
		Data: profile,
	})
}

func (a *App) UserAvailable(c echo.Context) error {
	rctx := c.Request().Context()

	var count int64
	if err := a.db.WithContext(rctx).Unscoped().Model(&models.User{}).
		Where("LOWER(username) = ?", strings.ToLower(c.Param("username"))).Count(&count).Error; err != nil {
		a.l.Error("failed to count user", zap.String("username", c.Param("username")), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &types.Data[types.UserAvailable]{
		Data: types.UserAvailable{Available: count == 0},
	})
}

func (a *App) UserSearch(c echo.Context) error {
	rctx := c.Request().Context()

	var req types.UserSearchParams
	if err := a.bind(c, &req); err != nil {
		return a.erv(c, err)
	}

	var users []models.User
	if err := a.db.WithContext(rctx).
		Select("username", "avatar_url").
		Where("status = ?", models.UserStatusActive).
		Where("LOWER(username) LIKE ? ESCAPE '\\'", likePattern(strings.ToLower(req.Partial))).
		Order("username ASC").
		Limit(req.Count).
		Find(&users).Error; err != nil {
		a.l.Error("failed to search users", zap.String("partial", req.Partial), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	res := []types.UserBrief{}
	for _, user := range users {
		res = append(res, types.UserBrief{
			Username:  user.Username,
			AvatarURL: user.AvatarURL,
		})
	}

	return c.JSON(http.StatusOK, res)
}

func (a *App) UserEdit(c echo.Context) error {
	username, err, statusCode := a.ownerOnly(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var req types.UserEditInput
	if err = a.bind(c, &req); err != nil {
		return a.erv(c, err)
	}

	var user models.User
	if err = a.db.WithContext(rctx).First(&user, "username = ? AND status = ?", username, models.UserStatusActive).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusUnprocessableEntity)
		}
		a.l.Error("failed to get user", zap.String("username", username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 只允许修改这几个字段
	updates := map[string]any{}
	for column, value := range map[string]*string{
		"avatar_url": req.AvatarURL,
		"name":       req.Name,
		"bio":        req.Bio,
		"location":   req.Location,
		"website":    req.Website,
	} {
		if value != nil {
			updates[column] = strings.TrimSpace(*value)
		}
	}

	if len(updates) > 0 {
		if err = a.db.WithContext(rctx).Model(&user).Updates(updates).Error; err != nil {
			a.l.Error("failed to update user", zap.String("username", username), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
		a.clearUserCache(rctx, username)
	}

	return c.JSON(http.StatusOK, &types.Message{Message: constants.MsgUpdateSuccess})
}

func (a *App) UserDelete(c echo.Context) error {
	username, err, statusCode := a.ownerOnly(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var user models.User
	if err = a.db.WithContext(rctx).First(&user, "username = ? AND status = ?", username, models.UserStatusActive).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusUnprocessableEntity)
		}
		a.l.Error("failed to get user", zap.String("username", username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if err = a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		// 只做标记，用户名继续保留
		if err := tx.Model(&user).Update("status", models.UserStatusDeleted).Error; err != nil {
			return err
		}
		if err := tx.Delete(&user).Error; err != nil {
			return err
		}
		// 释放第三方登录，之后可以重新注册
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.AuthProvider{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", user.ID).Delete(&models.RefreshToken{}).Error
	}); err != nil {
		a.l.Error("failed to delete user", zap.String("username", username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.clearUserCache(rctx, username)

	return c.JSON(http.StatusOK, &types.Message{Message: constants.MsgDeleteSuccess})
}

func (a *App) UserLinkBlockchainAccount(c echo.Context) error {
	username, err, statusCode := a.ownerOnly(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var req types.BlockchainAccountInput
	if err = a.bind(c, &req); err != nil {
		return a.erv(c, err)
	}

	var user models.User
	if err = a.db.WithContext(rctx).First(&user, "username = ? AND status = ?", username, models.UserStatusActive).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusUnprocessableEntity)
		}
		a.l.Error("failed to get user", zap.String("username", username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 每条链只保留一个地址
	account := models.BlockchainAccount{
		UserID:     user.ID,
		Blockchain: req.Blockchain,
		Address:    strings.TrimSpace(req.Address),
	}
	if err = a.db.WithContext(rctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "blockchain"}},
		DoUpdates: clause.AssignmentColumns([]string{"address", "updated_at", "deleted_at"}),
	}).Create(&account).Error; err != nil {
		a.l.Error("failed to link blockchain account", zap.String("username", username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.clearUserCache(rctx, username)

	return c.JSON(http.StatusOK, &types.Message{Message: constants.MsgUpdateSuccess})
}
