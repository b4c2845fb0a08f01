package handlers

import (
	"contribution-hub/app/server/constants"
	"contribution-hub/app/server/types"
	"contribution-hub/app/server/validation"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

// er 返回错误，没有指定消息时使用状态码对应的文本
func (a *App) er(c echo.Context, statusCode int, message ...string) error {
	var msg string
	switch {
	case len(message) > 0:
		msg = message[0]
	case statusCode == http.StatusUnauthorized:
		msg = constants.MsgNotAllowed
	case statusCode == http.StatusUnprocessableEntity:
		// 找不到对象都用 422 表示
		msg = constants.MsgDocumentDoesNotExist
	default:
		msg = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, &types.ErrorMessage{
		Message: msg,
	})
}

// bind 绑定请求并校验
func (a *App) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

// erv 返回绑定或校验失败的错误，校验失败时带上每个字段的信息
func (a *App) erv(c echo.Context, err error) error {
	a.l.Debug("invalid request", zap.String("URI", c.Request().RequestURI), zap.Error(err))

	return c.JSON(http.StatusBadRequest, &types.ErrorMessage{
		Message: constants.MsgValidationError,
		Fields:  validation.Fields(err),
	})
}
