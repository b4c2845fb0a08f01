package constants

import "time"

const (
	CacheKeyUserProfile = "hub:user:profile:%s" // %s -> username
	CacheKeyChainTx     = "hub:chain:tx:%s"     // %s -> transaction id
)

const (
	CacheExpireUserProfile = 1 * time.Hour
	CacheExpireChainTx     = 24 * time.Hour // 已经上链的交易不会再变化
)
