package middlewares

import (
	"contribution-hub/app/server/constants"
	"contribution-hub/app/server/jwt"
	"contribution-hub/app/server/types"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

const (
	ContextKeyUser   = "user"
	ContextKeySignup = "signup"
)

// 兼容 "Bearer <token>" 和直接传 token 两种写法
const tokenLookup = "header:Authorization:Bearer ,header:Authorization"

func notAllowed(l *zap.Logger) func(c echo.Context, err error) error {
	return func(c echo.Context, err error) error {
		l.Debug("rejected request", zap.String("URI", c.Request().RequestURI), zap.Error(err))
		return c.JSON(http.StatusUnauthorized, &types.ErrorMessage{
			Message: constants.MsgNotAllowed,
		})
	}
}

// Auth 要求请求携带有效的访问令牌，并拥有 scope 指定的权限
func Auth(j *jwt.JWT, l *zap.Logger, scope string) echo.MiddlewareFunc {
	parse := echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKeyUser,
		TokenLookup: tokenLookup,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return j.ParseUser(auth)
		},
		ErrorHandler: notAllowed(l),
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return parse(func(c echo.Context) error {
			if user, ok := JWTUser(c); !ok || (scope != "" && !user.HasScope(scope)) {
				return c.JSON(http.StatusUnauthorized, &types.ErrorMessage{
					Message: constants.MsgNotAllowed,
				})
			}
			return next(c)
		})
	}
}

// OptionalAuth 没有 Authorization 头时直接放行，有的话必须有效
func OptionalAuth(j *jwt.JWT, l *zap.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		Skipper: func(c echo.Context) bool {
			return c.Request().Header.Get(echo.HeaderAuthorization) == ""
		},
		ContextKey:  ContextKeyUser,
		TokenLookup: tokenLookup,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return j.ParseUser(auth)
		},
		ErrorHandler: notAllowed(l),
	})
}

// SignupAuth 只接受第三方登录后签发的注册令牌
func SignupAuth(j *jwt.JWT, l *zap.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKeySignup,
		TokenLookup: tokenLookup,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return j.ParseSignup(auth)
		},
		ErrorHandler: notAllowed(l),
	})
}

func JWTUser(c echo.Context) (*jwt.User, bool) {
	user, ok := c.Get(ContextKeyUser).(*jwt.User)
	return user, ok && user != nil
}

func JWTSignup(c echo.Context) (*jwt.Signup, bool) {
	signup, ok := c.Get(ContextKeySignup).(*jwt.Signup)
	return signup, ok && signup != nil
}
