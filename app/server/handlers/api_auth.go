package handlers

import (
	"context"
	"contribution-hub/app/server/constants"
	"contribution-hub/app/server/jwt"
	"contribution-hub/app/server/models"
	"contribution-hub/app/server/oauth"
	"contribution-hub/app/server/types"
	"errors"
	"fmt"
	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// generateUserTokens 签发访问令牌和刷新令牌，刷新令牌格式为 <id>.<secret>
func (a *App) generateUserTokens(ctx context.Context, user *models.User) (*types.Tokens, error) {
	secret := uuid.NewString()
	secretHash, err := argon2id.CreateHash(secret, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		Secret:    secretHash,
		ExpiresAt: time.Now().Add(constants.RefreshTokenDuration),
	}
	if err = a.db.WithContext(ctx).Create(&refreshToken).Error; err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	tokens, err := a.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	tokens.RefreshToken = fmt.Sprintf("%d.%s", refreshToken.ID, secret)

	return tokens, nil
}

func (a *App) generateAccessToken(user *models.User) (*types.Tokens, error) {
	expires := time.Now().Add(constants.AuthTokenDuration)
	accessToken, err := a.jwt.SignToken(&jwt.User{
		ID:       user.ID,
		Username: user.Username,
		Scopes:   user.Scopes,
		Expires:  expires.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &types.Tokens{
		TokenType:   "bearer",
		AccessToken: accessToken,
		ExpiresIn:   int64(constants.AuthTokenDuration / time.Minute),
	}, nil
}

// findRefreshToken 校验刷新令牌并返回对应记录
func (a *App) findRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	idStr, secret, found := strings.Cut(token, ".")
	if !found || secret == "" {
		return nil, fmt.Errorf("malformed refresh token")
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed refresh token id: %w", err)
	}

	var refreshToken models.RefreshToken
	if err = a.db.WithContext(ctx).First(&refreshToken, "id = ? AND expires_at > ?", uint(id), time.Now()).Error; err != nil {
		return nil, err
	}

	if match, _, err := argon2id.CheckHash(secret, refreshToken.Secret); err != nil {
		return nil, fmt.Errorf("failed to check refresh token: %w", err)
	} else if !match {
		return nil, fmt.Errorf("refresh token secret mismatch")
	}

	return &refreshToken, nil
}

func (a *App) AuthGitHub(c echo.Context) error {
	rctx := c.Request().Context()

	var req types.AuthGitHubInput
	if err := a.bind(c, &req); err != nil {
		return a.erv(c, err)
	}

	// 向 GitHub 确认 token 对应的用户
	profile, err := a.github.Profile(rctx, req.AccessToken)
	if err != nil {
		if errors.Is(err, oauth.ErrInvalidToken) {
			return a.er(c, http.StatusUnauthorized, constants.MsgInvalidToken)
		}
		a.l.Error("failed to get github profile", zap.Error(err))
		return a.er(c, http.StatusBadGateway, constants.MsgOAuthUnavailable)
	}

	// 已经注册过的用户直接登录
	var provider models.AuthProvider
	err = a.db.WithContext(rctx).
		Joins("JOIN users ON users.id = auth_providers.user_id AND users.deleted_at IS NULL AND users.status = ?", models.UserStatusActive).
		First(&provider, "auth_providers.type = ? AND auth_providers.username = ?", constants.AuthProviderGitHub, profile.Login).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		a.l.Error("failed to find auth provider", zap.String("login", profile.Login), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if err == nil {
		var user models.User
		if err = a.db.WithContext(rctx).First(&user, "id = ?", provider.UserID).Error; err != nil {
			a.l.Error("failed to get user", zap.Uint("id", provider.UserID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}

		// token 有变化时才更新
		if old, err := a.openProviderToken(provider.Token); err != nil || old != req.AccessToken {
			if sealed, err := a.sealProviderToken(req.AccessToken); err != nil {
				a.l.Error("failed to encrypt provider token", zap.Error(err))
			} else if err = a.db.WithContext(rctx).Model(&provider).Update("token", sealed).Error; err != nil {
				a.l.Error("failed to update provider token", zap.Uint("id", provider.ID), zap.Error(err))
			}
		}

		tokens, err := a.generateUserTokens(rctx, &user)
		if err != nil {
			a.l.Error("failed to generate tokens", zap.Uint("id", user.ID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}

		return c.JSON(http.StatusOK, &types.AuthGitHubResult{
			Registered: true,
			Tokens:     tokens,
			Login:      profile.Login,
			AvatarURL:  profile.AvatarURL,
		})
	}

	// 还没有账户，签发注册用的令牌
	signupToken, err := a.jwt.SignSignup(&jwt.Signup{
		ProviderType:     constants.AuthProviderGitHub,
		ProviderUsername: profile.Login,
		ProviderToken:    req.AccessToken,
		AvatarURL:        profile.AvatarURL,
		Expires:          time.Now().Add(constants.SignupTokenDuration).Unix(),
	})
	if err != nil {
		a.l.Error("failed to sign signup token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &types.AuthGitHubResult{
		Registered:  false,
		SignupToken: signupToken,
		Login:       profile.Login,
		AvatarURL:   profile.AvatarURL,
	})
}

func (a *App) AuthRefresh(c echo.Context) error {
	rctx := c.Request().Context()

	var req types.RefreshTokenInput
	if err := a.bind(c, &req); err != nil {
		return a.erv(c, err)
	}

	refreshToken, err := a.findRefreshToken(rctx, req.Token)
	if err != nil {
		a.l.Debug("invalid refresh token", zap.Error(err))
		return a.er(c, http.StatusUnauthorized, constants.MsgInvalidToken)
	}

	var user models.User
	if err = a.db.WithContext(rctx).First(&user, "id = ? AND status = ?", refreshToken.UserID, models.UserStatusActive).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusUnauthorized, constants.MsgInvalidToken)
		}
		a.l.Error("failed to get user", zap.Uint("id", refreshToken.UserID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	tokens, err := a.generateAccessToken(&user)
	if err != nil {
		a.l.Error("failed to generate access token", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, tokens)
}

func (a *App) AuthRevoke(c echo.Context) error {
	rctx := c.Request().Context()

	var req types.RefreshTokenInput
	if err := a.bind(c, &req); err != nil {
		return a.erv(c, err)
	}

	refreshToken, err := a.findRefreshToken(rctx, req.Token)
	if err != nil {
		// 无效或者已经撤销的令牌，结果都一样
		a.l.Debug("revoking invalid refresh token", zap.Error(err))
		return c.NoContent(http.StatusOK)
	}

	if err = a.db.WithContext(rctx).Delete(refreshToken).Error; err != nil {
		a.l.Error("failed to delete refresh token", zap.Uint("id", refreshToken.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusOK)
}
