package main

import (
	"context"
	"contribution-hub/app/server/apidocs"
	"contribution-hub/app/server/chain"
	"contribution-hub/app/server/handlers"
	"contribution-hub/app/server/inits"
	"contribution-hub/app/server/jwt"
	"contribution-hub/app/server/oauth"
	"contribution-hub/app/server/validation"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"log"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd, "server")
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer l.Sync()

	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// Steem 节点
	steem, err := chain.Dial(context.Background(), cfg.Upstream.SteemAPI)
	if err != nil {
		l.Fatal("error initializing Steem client", zap.Error(err))
	}
	defer steem.Close()

	// GitHub
	github, err := oauth.NewGitHub(cfg.Upstream.GitHubAPI)
	if err != nil {
		l.Fatal("error initializing GitHub client", zap.Error(err))
	}

	// 请求校验
	v, err := validation.New()
	if err != nil {
		l.Fatal("error initializing validator", zap.Error(err))
	}

	// 准备 handler app
	handlerApp := handlers.NewApp(l, db, rdb, j, cfg.Security.EncryptSecretKey, steem, github)

	// 准备 echo 服务
	e := echo.New()
	e.HideBanner = true
	e.Validator = v
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogMethod:  true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("URI", v.URI),
				zap.String("method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.System.CORSOrigins,
	}))

	// 绑定 echo 服务
	handlerApp.Register(e)

	// 添加 API 文档
	if !cfg.System.IsProd {
		if doc, err := apidocs.Load(context.Background()); err != nil {
			l.Error("error loading api document", zap.Error(err))
		} else if mw, err := apidocs.Doc("/api", doc); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		} else {
			e.Pre(mw)
		}
	}

	// 启动 echo 服务
	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
