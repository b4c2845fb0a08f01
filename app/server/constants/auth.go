package constants

import "time"

const (
	AuthTokenDuration    = 30 * time.Minute
	RefreshTokenDuration = 30 * 24 * time.Hour
	SignupTokenDuration  = 15 * time.Minute
)

const (
	ScopeUser = "user"
)

const (
	AuthProviderGitHub = "github"
)
