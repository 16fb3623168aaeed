package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"smartsave-go/internal/config"
	"smartsave-go/internal/domain/user"
	"smartsave-go/pkg/logger"
)

const (
	sessionName = "smartsave_session"

	keyName    = "name"
	keyEmail   = "email"
	keyPicture = "picture"
	keyState   = "oauth_state"
)

var ErrStateMismatch = errors.New("oauth state mismatch")

type contextKey int

const userKey contextKey = iota

// Sessions keeps the signed-in profile in a signed cookie.
type Sessions struct {
	store *sessions.CookieStore
	log   logger.Logger
}

func NewSessions(cfg config.AuthConfig, secure bool, log logger.Logger) *Sessions {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store, log: log}
}

// Load attaches the session profile, if any, to the request context.
func (s *Sessions) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := s.store.Get(r, sessionName)
		if err != nil {
			// An undecodable cookie (rotated secret) is treated as signed out.
			s.log.Debug("session: discarding invalid cookie", "err", err)
			next.ServeHTTP(w, r)
			return
		}

		profile := user.Profile{
			Name:    stringValue(session.Values[keyName]),
			Email:   stringValue(session.Values[keyEmail]),
			Picture: stringValue(session.Values[keyPicture]),
		}
		if !profile.IsZero() {
			r = r.WithContext(WithUser(r.Context(), profile))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Sessions) SignIn(w http.ResponseWriter, r *http.Request, profile user.Profile) error {
	session, _ := s.store.Get(r, sessionName)
	session.Values[keyName] = profile.Name
	session.Values[keyEmail] = profile.Email
	session.Values[keyPicture] = profile.Picture
	delete(session.Values, keyState)
	return session.Save(r, w)
}

func (s *Sessions) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, sessionName)
	for key := range session.Values {
		delete(session.Values, key)
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// BeginLogin stores the state value the provider must echo back.
func (s *Sessions) BeginLogin(w http.ResponseWriter, r *http.Request, state string) error {
	session, _ := s.store.Get(r, sessionName)
	session.Values[keyState] = state
	return session.Save(r, w)
}

// CheckState compares state with the value saved by BeginLogin. The saved
// value is single use.
func (s *Sessions) CheckState(w http.ResponseWriter, r *http.Request, state string) error {
	session, _ := s.store.Get(r, sessionName)
	expected := stringValue(session.Values[keyState])
	delete(session.Values, keyState)
	if err := session.Save(r, w); err != nil {
		return err
	}
	if expected == "" || expected != state {
		return ErrStateMismatch
	}
	return nil
}

// RequireUser redirects browsers to /login and answers API callers with 401
// when no profile is attached.
func RequireUser(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}
			if wantsJSON(r) {
				writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
				return
			}
			http.Redirect(w, r, "/login", http.StatusFound)
		})
	}
}

func WithUser(ctx context.Context, profile user.Profile) context.Context {
	return context.WithValue(ctx, userKey, profile)
}

func UserFromContext(ctx context.Context) (user.Profile, bool) {
	profile, ok := ctx.Value(userKey).(user.Profile)
	if !ok || profile.IsZero() {
		return user.Profile{}, false
	}
	return profile, true
}

func wantsJSON(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return true
	}
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func stringValue(value interface{}) string {
	s, _ := value.(string)
	return s
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
