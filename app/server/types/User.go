package types

import "time"

type UserSignupInput struct {
	Username  string `json:"username" validate:"required,min=3,max=39,username"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url,max=2048"`
}

type UserEditInput struct {
	AvatarURL *string `json:"avatarUrl" validate:"omitnil,len=0|url,max=2048"`
	Name      *string `json:"name" validate:"omitnil,max=100"`
	Bio       *string `json:"bio" validate:"omitnil,max=1000"`
	Location  *string `json:"location" validate:"omitnil,max=100"`
	Website   *string `json:"website" validate:"omitnil,len=0|url,max=2048"`
}

type BlockchainAccountInput struct {
	Blockchain string `json:"blockchain" validate:"required,oneof=steem"`
	Address    string `json:"address" validate:"required,notblank,max=64"`
}

type BlockchainAccountInfo struct {
	Blockchain string `json:"blockchain"`
	Address    string `json:"address"`
}

type UserPublic struct {
	Username           string                  `json:"username"`
	AvatarURL          string                  `json:"avatarUrl"`
	Name               string                  `json:"name"`
	Bio                string                  `json:"bio"`
	Location           string                  `json:"location"`
	Website            string                  `json:"website"`
	BlockchainAccounts []BlockchainAccountInfo `json:"blockchainAccounts"`
	CreatedAt          time.Time               `json:"createdAt"`
}

type UserSelf struct {
	UserPublic
	ID     uint     `json:"id"`
	Scopes []string `json:"scopes"`
}

type UserSignupResult struct {
	UserPublic
	Tokens Tokens `json:"tokens"`
}

type UserBrief struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

type UserAvailable struct {
	Available bool `json:"available"`
}

type UserSearchParams struct {
	Partial string `param:"partial" validate:"required,min=2,max=32"`
	Count   int    `param:"count" validate:"required,min=1,max=20"`
}
