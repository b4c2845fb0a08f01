package handlers

import (
	"contribution-hub/app/worker/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"time"
)

type App struct {
	cfg *config.Config
	l   *zap.Logger
	db  *gorm.DB

	ticker   *time.Ticker
	stopChan chan struct{}
	done     chan struct{}
}

func NewApp(cfg *config.Config, l *zap.Logger, db *gorm.DB) *App {
	return &App{
		cfg: cfg,
		l:   l,
		db:  db,
	}
}

// Start 先立即清理一次，之后按间隔循环
func (a *App) Start() {
	a.ticker = time.NewTicker(a.cfg.CleanupInterval)
	a.stopChan = make(chan struct{})
	a.done = make(chan struct{})
	go a.loop()
}

func (a *App) loop() {
	defer close(a.done)

	a.cleanup()
	for {
		select {
		case <-a.ticker.C:
			a.l.Debug("cleanup loop")
			a.cleanup()
		case <-a.stopChan:
			a.l.Debug("stop cleanup loop")
			return
		}
	}
}

// Stop 停止循环，并等待正在进行的清理结束
func (a *App) Stop() {
	a.ticker.Stop()
	close(a.stopChan)
	<-a.done
}
