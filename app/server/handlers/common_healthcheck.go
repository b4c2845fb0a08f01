package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

func (a *App) HealthCheck(c echo.Context) error {
	rctx := c.Request().Context()

	if sqlDB, err := a.db.DB(); err != nil {
		a.l.Error("failed to get database handle", zap.Error(err))
		return c.NoContent(http.StatusServiceUnavailable)
	} else if err = sqlDB.PingContext(rctx); err != nil {
		a.l.Error("database unreachable", zap.Error(err))
		return c.NoContent(http.StatusServiceUnavailable)
	}

	if err := a.rdb.Ping(rctx).Err(); err != nil {
		a.l.Error("redis unreachable", zap.Error(err))
		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.NoContent(http.StatusOK)
}
