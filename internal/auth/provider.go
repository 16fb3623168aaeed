// Package auth implements the login providers behind /login/google.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"smartsave-go/internal/config"
	"smartsave-go/internal/domain/user"
	"smartsave-go/pkg/logger"
)

var (
	ErrMissingCode   = errors.New("authorization code missing")
	ErrAccessDenied  = errors.New("access denied by user")
	ErrEmptyIdentity = errors.New("provider returned no identity")
)

// Provider starts and completes a login. AuthURL is where the browser is
// sent; Complete turns the callback parameters into a profile.
type Provider interface {
	Kind() string
	AuthURL(state string) string
	Complete(ctx context.Context, params url.Values) (user.Profile, error)
}

// New returns the provider selected by cfg.Provider.
func New(cfg config.AuthConfig, log logger.Logger) (Provider, error) {
	switch cfg.Provider {
	case config.AuthProviderSimulated:
		log.Info("auth: using simulated google login")
		return NewSimulated(user.Profile{
			Name:    cfg.SimulatedUser.Name,
			Email:   cfg.SimulatedUser.Email,
			Picture: cfg.SimulatedUser.Picture,
		}), nil
	case config.AuthProviderGoogle:
		log.Info("auth: using google oauth2", "redirect_url", cfg.GoogleRedirectURL)
		return NewGoogle(cfg), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}
