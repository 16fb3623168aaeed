package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"smartsave-go/internal/config"
	"smartsave-go/internal/domain/user"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleProvider struct {
	oauth       *oauth2.Config
	userInfoURL string
	timeout     time.Duration
}

func NewGoogle(cfg config.AuthConfig) *GoogleProvider {
	timeout := cfg.UserInfoTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: googleUserInfoURL,
		timeout:     timeout,
	}
}

func (p *GoogleProvider) Kind() string {
	return config.AuthProviderGoogle
}

func (p *GoogleProvider) AuthURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type userInfoResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

func (p *GoogleProvider) Complete(ctx context.Context, params url.Values) (user.Profile, error) {
	if params.Get("error") != "" {
		return user.Profile{}, ErrAccessDenied
	}
	code := params.Get("code")
	if code == "" {
		return user.Profile{}, ErrMissingCode
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return user.Profile{}, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return user.Profile{}, err
	}
	resp, err := p.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return user.Profile{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return user.Profile{}, fmt.Errorf("fetch userinfo: unexpected status %d", resp.StatusCode)
	}

	var payload userInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return user.Profile{}, fmt.Errorf("decode userinfo: %w", err)
	}

	profile := user.Profile{Name: payload.Name, Email: payload.Email, Picture: payload.Picture}
	if profile.IsZero() {
		return user.Profile{}, ErrEmptyIdentity
	}
	return profile, nil
}
