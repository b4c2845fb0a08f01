package handlers

import (
	"contribution-hub/app/server/chain"
	"contribution-hub/app/server/jwt"
	"contribution-hub/app/server/oauth"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	l   *zap.Logger   // 日志
	db  *gorm.DB      // 数据库
	rdb *redis.Client // Redis
	jwt *jwt.JWT      // JWT ，用于无状态验证
	esk []byte        // 加密用密钥 (EncryptSecretKey)

	chain  chain.Reader       // 核对打赏交易
	github oauth.Provider     // 拉取 GitHub 用户信息
	policy *bluemonday.Policy // 清理用户提交的 HTML
}

func NewApp(l *zap.Logger, db *gorm.DB, rdb *redis.Client, j *jwt.JWT, esk string, chainReader chain.Reader, github oauth.Provider) *App {
	return &App{
		l:   l,
		db:  db,
		rdb: rdb,
		jwt: j,
		esk: []byte(esk),

		chain:  chainReader,
		github: github,
		policy: bluemonday.UGCPolicy(),
	}
}
