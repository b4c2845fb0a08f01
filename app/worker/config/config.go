package config

import (
	"time"
)

type Config struct {
	// 基础配置
	IsProd bool

	// 与 Server 共用的数据库
	DBConnectionString string

	// 清理间隔
	CleanupInterval time.Duration
}
