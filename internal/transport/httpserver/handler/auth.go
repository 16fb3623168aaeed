package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"smartsave-go/internal/auth"
	"smartsave-go/internal/config"
)

// LoginGoogle starts the provider's login flow.
func (h *Handlers) LoginGoogle(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	if err := h.Sessions.BeginLogin(w, r, state); err != nil {
		h.log.InternalError("auth.login: save state failed", err)
		http.Error(w, "could not start login", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, h.Auth.AuthURL(state), http.StatusFound)
}

type simAuthorizePage struct {
	State   string
	Name    string
	Email   string
	Picture string
}

// SimAuthorizePage renders the local stand-in for Google's consent screen.
func (h *Handlers) SimAuthorizePage(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.Auth.(*auth.SimulatedProvider)
	if !ok {
		http.NotFound(w, r)
		return
	}

	profile := provider.Profile()
	h.render(w, "sim_google.html", simAuthorizePage{
		State:   r.URL.Query().Get("state"),
		Name:    profile.Name,
		Email:   profile.Email,
		Picture: profile.Picture,
	})
}

func (h *Handlers) SimAuthorize(w http.ResponseWriter, r *http.Request) {
	if h.Auth.Kind() != config.AuthProviderSimulated {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.completeLogin(w, r, r.PostForm.Get("state"), r.PostForm)
}

// Authorize is the OAuth2 redirect target.
func (h *Handlers) Authorize(w http.ResponseWriter, r *http.Request) {
	if h.Auth.Kind() == config.AuthProviderSimulated {
		http.Redirect(w, r, "/login/google", http.StatusFound)
		return
	}
	query := r.URL.Query()
	h.completeLogin(w, r, query.Get("state"), query)
}

func (h *Handlers) completeLogin(w http.ResponseWriter, r *http.Request, state string, params map[string][]string) {
	if err := h.Sessions.CheckState(w, r, state); err != nil {
		h.log.BusinessError("auth.authorize: state check failed", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	profile, err := h.Auth.Complete(r.Context(), params)
	if err != nil {
		if errors.Is(err, auth.ErrAccessDenied) || errors.Is(err, auth.ErrMissingCode) {
			h.log.BusinessError("auth.authorize: login not completed", err, "provider", h.Auth.Kind())
		} else {
			h.log.InternalError("auth.authorize: complete login failed", err, "provider", h.Auth.Kind())
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.Sessions.SignIn(w, r, profile); err != nil {
		h.log.InternalError("auth.authorize: save session failed", err)
		http.Error(w, "could not save session", http.StatusInternalServerError)
		return
	}

	h.log.Info("auth: signed in", "email", profile.Email, "provider", h.Auth.Kind())
	http.Redirect(w, r, "/goal", http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.log.InternalError("auth.logout: clear session failed", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
