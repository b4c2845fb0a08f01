package inits

import (
	"contribution-hub/app/server/config"
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strings"
)

func Config() (*config.Config, error) {
	// 本地开发时可以使用 .env 文件，文件不存在不影响从环境变量读取
	_ = godotenv.Load()

	cfg := &config.Config{}

	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if origins, exist := os.LookupEnv("CORS_ORIGINS"); !exist || origins == "" {
		cfg.System.CORSOrigins = []string{"*"}
	} else {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.System.CORSOrigins = append(cfg.System.CORSOrigins, origin)
			}
		}
	}

	if encsk, exist := os.LookupEnv("ENCRYPT_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("ENCRYPT_SECRET_KEY environment variable not set")
	} else if l := len(encsk); l != 16 && l != 24 && l != 32 {
		// AES 只接受这三种长度的密钥
		return nil, fmt.Errorf("ENCRYPT_SECRET_KEY should be 16, 24 or 32 bytes long")
	} else {
		cfg.Security.EncryptSecretKey = encsk
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	if steemAPI, exist := os.LookupEnv("STEEM_API"); !exist {
		cfg.Upstream.SteemAPI = "https://api.steemit.com"
	} else {
		cfg.Upstream.SteemAPI = steemAPI
	}

	if githubAPI, exist := os.LookupEnv("GITHUB_API"); !exist {
		cfg.Upstream.GitHubAPI = "https://api.github.com/"
	} else {
		cfg.Upstream.GitHubAPI = githubAPI
	}

	return cfg, nil
}
