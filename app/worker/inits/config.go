package inits

import (
	"contribution-hub/app/worker/config"
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	_ = godotenv.Load()

	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.DBConnectionString = dbconn
	}

	if intervalStr, exist := os.LookupEnv("CLEANUP_INTERVAL"); !exist {
		cfg.CleanupInterval = 1 * time.Hour // 默认每小时一次
	} else if interval, err := time.ParseDuration(intervalStr); err != nil || interval <= 0 {
		return nil, fmt.Errorf("CLEANUP_INTERVAL should be a valid positive duration")
	} else {
		cfg.CleanupInterval = interval
	}

	return &cfg, nil
}
