package config

type Config struct {
	System struct {
		IsProd                bool     // 是否为生产环境
		Listen                string   // 监听地址
		DBConnectionString    string   // Postgres 数据库的连接字符串
		RedisConnectionString string   // Redis 数据库的连接字符串
		CORSOrigins           []string // 允许跨域访问的前端来源
	}
	Security struct {
		EncryptSecretKey   string // 加密密钥，用于加密数据库中的敏感信息（例如 OAuth 提供方的 token ），设定后不能更改
		SignatureSecretKey string // 签名密钥，用于产生签名（例如 JWT ），更新会导致旧有会话失效，但不影响使用
	}
	Upstream struct {
		SteemAPI  string // Steem 节点的 JSON-RPC 地址，用于核对打赏交易
		GitHubAPI string // GitHub REST API 地址，用于拉取 OAuth 用户信息
	}
}
