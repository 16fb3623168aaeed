package auth

import (
	"context"
	"net/url"

	"smartsave-go/internal/config"
	"smartsave-go/internal/domain/user"
)

// SimulatedProvider stands in for Google during demos: the consent page is
// served locally and always signs in the configured profile.
type SimulatedProvider struct {
	profile user.Profile
}

func NewSimulated(profile user.Profile) *SimulatedProvider {
	return &SimulatedProvider{profile: profile}
}

func (p *SimulatedProvider) Kind() string {
	return config.AuthProviderSimulated
}

func (p *SimulatedProvider) AuthURL(state string) string {
	return "/sim-authorize?" + url.Values{"state": {state}}.Encode()
}

func (p *SimulatedProvider) Profile() user.Profile {
	return p.profile
}

func (p *SimulatedProvider) Complete(ctx context.Context, params url.Values) (user.Profile, error) {
	if params.Get("error") != "" {
		return user.Profile{}, ErrAccessDenied
	}
	if p.profile.IsZero() {
		return user.Profile{}, ErrEmptyIdentity
	}
	return p.profile, nil
}
