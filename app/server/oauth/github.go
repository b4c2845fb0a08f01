// Package oauth resolves OAuth access tokens into provider profiles.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/go-github/v66/github"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrInvalidToken is returned when the provider rejects the access token.
var ErrInvalidToken = errors.New("invalid provider token")

type Profile struct {
	Login     string
	AvatarURL string
}

type Provider interface {
	Profile(ctx context.Context, token string) (*Profile, error)
}

type GitHub struct {
	baseURL *url.URL
	hc      *http.Client
}

var _ Provider = (*GitHub)(nil)

func NewGitHub(baseURL string) (*GitHub, error) {
	// go-github 要求 BaseURL 以 / 结尾
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse github api url: %w", err)
	}

	return &GitHub{
		baseURL: u,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (g *GitHub) Profile(ctx context.Context, token string) (*Profile, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	client := github.NewClient(g.hc).WithAuthToken(token)
	client.BaseURL = g.baseURL

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil &&
			(errResp.Response.StatusCode == http.StatusUnauthorized || errResp.Response.StatusCode == http.StatusForbidden) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("get github user: %w", err)
	}

	if user.GetLogin() == "" {
		return nil, ErrInvalidToken
	}

	return &Profile{
		Login:     user.GetLogin(),
		AvatarURL: user.GetAvatarURL(),
	}, nil
}
