package mw

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/georepo/internal/auth"
	"github.com/MrSnakeDoc/georepo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/georepo/internal/logger"
	"github.com/MrSnakeDoc/georepo/internal/session"
)

// AnonymousCookieName is used when the login gate is disabled.
const AnonymousCookieName = "georepo_session"

type sessionKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session attached by LoadSession.
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*session.Session)
	return s, ok && s != nil
}

func cookieName(d deps.Deps) string {
	if d.AuthDisabled() {
		return AnonymousCookieName
	}
	return d.Auth.CookieName()
}

// LoadSession resolves the session cookie. With the login gate enabled a
// valid token whose session is gone (restart, idle sweep) gets a fresh
// session for the same user, so favorites are reloaded from storage.
// With the gate disabled every visitor without a live session gets an
// anonymous one.
func LoadSession(d deps.Deps) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s := resolveSession(w, r, d); s != nil {
				r = r.WithContext(WithSession(r.Context(), s))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveSession(w http.ResponseWriter, r *http.Request, d deps.Deps) *session.Session {
	c, err := r.Cookie(cookieName(d))
	hasCookie := err == nil && c.Value != ""

	if d.AuthDisabled() {
		if hasCookie {
			if s, err := d.Sessions.Get(c.Value); err == nil {
				return s
			}
		}
		s, err := StartSession(r.Context(), w, d, "", "")
		if err != nil {
			d.Logger.Warn("failed to start anonymous session", logger.Error(err))
		}
		return s
	}

	if !hasCookie {
		return nil
	}
	claims, err := d.Auth.ParseToken(c.Value)
	if err != nil {
		d.Logger.Debug("rejected session cookie", logger.Error(err))
		ClearSession(w, d)
		return nil
	}
	if s, err := d.Sessions.Get(claims.SessionID); err == nil && s.Username == claims.Subject {
		return s
	}

	s, err := StartSession(r.Context(), w, d, claims.Subject, claims.Name)
	if err != nil {
		d.Logger.Warn("session restored without saved favorites",
			logger.String("username", claims.Subject),
			logger.Error(err))
	}
	return s
}

// StartSession creates a session, sets its cookie and counts the visit.
// The returned error reports a favorites load failure; the session is
// usable regardless.
func StartSession(ctx context.Context, w http.ResponseWriter, d deps.Deps, username, name string) (*session.Session, error) {
	s, loadErr := d.Sessions.Create(ctx, username, name)

	value := s.ID
	expires := time.Time{}
	if !d.AuthDisabled() {
		token, exp, err := d.Auth.IssueToken(auth.Identity{Username: username, Name: name}, s.ID)
		if err != nil {
			d.Sessions.Delete(s.ID)
			return nil, err
		}
		value, expires = token, exp
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(d),
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   d.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	if d.Visitors != nil {
		if n, err := d.Visitors.IncrementVisitors(ctx); err != nil {
			d.Logger.Warn("failed to count visitor", logger.Error(err))
		} else {
			d.Logger.Debug("new visitor", logger.Int64("visitors", n))
		}
	}

	return s, loadErr
}

// ClearSession expires the session cookie.
func ClearSession(w http.ResponseWriter, d deps.Deps) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(d),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   d.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireSession rejects requests without a session.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFrom(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "please enter your username and password"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
