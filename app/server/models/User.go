package models

import "gorm.io/gorm"

const (
	UserStatusActive  = "active"
	UserStatusDeleted = "deleted"
)

type User struct {
	gorm.Model

	// 基础信息
	Username  string `gorm:"column:username;uniqueIndex"` // 用户名，全局唯一（包含已删除的用户）
	AvatarURL string `gorm:"column:avatar_url"`           // 头像地址
	Name      string `gorm:"column:name"`                 // 显示名称
	Bio       string `gorm:"column:bio"`                  // 个人简介
	Location  string `gorm:"column:location"`             // 所在地
	Website   string `gorm:"column:website"`              // 个人网站

	// 权限与状态
	Scopes StringArray `gorm:"column:scopes"`                   // 权限范围，普通用户为 user
	Status string      `gorm:"column:status;default:active;index"` // active 或 deleted ，删除只做标记

	// 关联信息
	AuthProviders      []AuthProvider      `gorm:"foreignKey:UserID"` // 第三方登录来源
	BlockchainAccounts []BlockchainAccount `gorm:"foreignKey:UserID"` // 绑定的链上账户
}

// ChainAddress 返回用户在指定链上绑定的地址，没有绑定时返回空字符串
func (u *User) ChainAddress(blockchain string) string {
	for _, account := range u.BlockchainAccounts {
		if account.Blockchain == blockchain {
			return account.Address
		}
	}
	return ""
}

type AuthProvider struct {
	gorm.Model

	UserID   uint   `gorm:"column:user_id;index"`
	Type     string `gorm:"column:type;uniqueIndex:idx_auth_provider_login"`     // 提供方类型，例如 github
	Username string `gorm:"column:username;uniqueIndex:idx_auth_provider_login"` // 在提供方的登录名
	Token    []byte `gorm:"column:token"`                                        // 提供方的 access token ，使用来自环境变量的 secret key 加密
}

type BlockchainAccount struct {
	gorm.Model

	UserID     uint   `gorm:"column:user_id;uniqueIndex:idx_blockchain_account_user"`
	Blockchain string `gorm:"column:blockchain;uniqueIndex:idx_blockchain_account_user"` // 链名称，例如 steem
	Address    string `gorm:"column:address"`                                             // 链上的账户名或地址
}
