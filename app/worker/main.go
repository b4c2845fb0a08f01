package main

import (
	"context"
	serverInits "contribution-hub/app/server/inits"
	"contribution-hub/app/worker/handlers"
	"contribution-hub/app/worker/inits"
	"fmt"
	"go.uber.org/zap"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := serverInits.Logger(!cfg.IsProd, "worker")
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	l.Debug("logger initialized")

	// 初始化数据库，与 Server 共用同一套表结构
	db, err := serverInits.DB(cfg.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 开启清理循环
	handlerApp := handlers.NewApp(cfg, l, db)
	handlerApp.Start()

	// 等待退出信号
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	handlerApp.Stop()
	l.Info("worker stopped")
}
