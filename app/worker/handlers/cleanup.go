package handlers

import (
	"contribution-hub/app/server/models"
	"go.uber.org/zap"
	"time"
)

// cleanup 删除已经过期的刷新令牌
func (a *App) cleanup() int64 {
	result := a.db.Where("expires_at <= ?", time.Now()).Delete(&models.RefreshToken{})
	if result.Error != nil {
		a.l.Error("failed to delete expired refresh tokens", zap.Error(result.Error))
		return 0
	}

	if result.RowsAffected > 0 {
		a.l.Info("expired refresh tokens removed", zap.Int64("count", result.RowsAffected))
	}
	return result.RowsAffected
}
