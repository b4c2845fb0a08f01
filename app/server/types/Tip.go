package types

type TipClaim struct {
	Currency string `json:"currency" validate:"required,max=16"`
	Amount   string `json:"amount" validate:"required,max=32"` // 和链上一致的格式，例如 1.000
}

type TipInput struct {
	Obj       string     `json:"obj" validate:"required,max=32"`
	ID        uint       `json:"id" validate:"required"`
	Tips      []TipClaim `json:"tips" validate:"required,min=1,max=10,dive"`
	Anonymous bool       `json:"anonymous"`
	Data      string     `json:"data" validate:"required,max=128"` // 链上交易 ID
}

type TipClaimResult struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
	Status   string `json:"status"`
}

type TipResult struct {
	Processed bool             `json:"processed"`
	Claims    []TipClaimResult `json:"claims"`
}

type AuthorInfo struct {
	SteemUser *string `json:"steemUser"`
	Username  *string `json:"username"`
}
