package jwt

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"time"
)

const (
	kindAccess = "access"
	kindSignup = "signup"
)

type JWT struct {
	key []byte
}

// User 是访问令牌里携带的身份
type User struct {
	ID       uint
	Username string
	Scopes   []string
	Expires  int64 // Unix second
}

func (u *User) HasScope(scope string) bool {
	for _, s := range u.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Signup 是第三方登录成功但还没有注册账户时签发的令牌，只能用来创建账户
type Signup struct {
	ProviderType     string
	ProviderUsername string
	ProviderToken    string
	AvatarURL        string
	Expires          int64 // Unix second
}

type claims struct {
	jwt.RegisteredClaims

	Kind string `json:"kind"`

	// access
	UID      uint     `json:"uid,omitempty"`
	Username string   `json:"username,omitempty"`
	Scopes   []string `json:"scopes,omitempty"`

	// signup
	ProviderType     string `json:"providerType,omitempty"`
	ProviderUsername string `json:"providerUsername,omitempty"`
	ProviderToken    string `json:"providerToken,omitempty"`
	AvatarURL        string `json:"avatarUrl,omitempty"`
}

func New(key string) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key)}, nil
}

func (j *JWT) parse(tokenString string, kind string) (*claims, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	// 不同用途的令牌不能混用
	if c.Kind != kind {
		return nil, fmt.Errorf("unexpected token kind: %s", c.Kind)
	}

	return c, nil
}

func (j *JWT) sign(c *claims) (string, error) {
	c.IssuedAt = jwt.NewNumericDate(time.Now())

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	// 签名并返回
	return token.SignedString(j.key)
}

func (j *JWT) ParseUser(tokenString string) (*User, error) {
	c, err := j.parse(tokenString, kindAccess)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:       c.UID,
		Username: c.Username,
		Scopes:   c.Scopes,
		Expires:  c.ExpiresAt.Unix(),
	}, nil
}

func (j *JWT) SignToken(user *User) (string, error) {
	return j.sign(&claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Unix(user.Expires, 0)),
		},
		Kind:     kindAccess,
		UID:      user.ID,
		Username: user.Username,
		Scopes:   user.Scopes,
	})
}

func (j *JWT) ParseSignup(tokenString string) (*Signup, error) {
	c, err := j.parse(tokenString, kindSignup)
	if err != nil {
		return nil, err
	}

	return &Signup{
		ProviderType:     c.ProviderType,
		ProviderUsername: c.ProviderUsername,
		ProviderToken:    c.ProviderToken,
		AvatarURL:        c.AvatarURL,
		Expires:          c.ExpiresAt.Unix(),
	}, nil
}

func (j *JWT) SignSignup(signup *Signup) (string, error) {
	return j.sign(&claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Unix(signup.Expires, 0)),
		},
		Kind:             kindSignup,
		ProviderType:     signup.ProviderType,
		ProviderUsername: signup.ProviderUsername,
		ProviderToken:    signup.ProviderToken,
		AvatarURL:        signup.AvatarURL,
	})
}
