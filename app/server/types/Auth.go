package types

type AuthGitHubInput struct {
	AccessToken string `json:"accessToken" validate:"required,max=512"`
}

// AuthGitHubResult 已注册的用户直接拿到 Tokens ，否则拿到注册用的 SignupToken
type AuthGitHubResult struct {
	Registered  bool    `json:"registered"`
	Tokens      *Tokens `json:"tokens,omitempty"`
	SignupToken string  `json:"signupToken,omitempty"`
	Login       string  `json:"login"`
	AvatarURL   string  `json:"avatarUrl"`
}

type Tokens struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"` // 分钟
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RefreshTokenInput struct {
	Token string `json:"token" validate:"required,max=256"`
}
