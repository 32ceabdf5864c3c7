package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/georepo/internal/auth"
	"github.com/MrSnakeDoc/georepo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/georepo/internal/httpserver/mw"
	"github.com/MrSnakeDoc/georepo/internal/logger"
	"github.com/MrSnakeDoc/georepo/internal/session"
)

const maxLoginBody = 4 << 10

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Username  string `json:"username,omitempty"`
	Name      string `json:"name,omitempty"`
	Anonymous bool   `json:"anonymous"`
	Favorites int    `json:"favorites"`
	Notice    string `json:"notice,omitempty"`
}

func describeSession(s *session.Session) sessionResponse {
	return sessionResponse{
		Username:  s.Username,
		Name:      s.Name,
		Anonymous: s.Username == "",
		Favorites: s.Ledger.Len(),
	}
}

// readLogin accepts a JSON body or a urlencoded form.
func readLogin(w http.ResponseWriter, r *http.Request) (loginRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBody)

	var req loginRequest
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	}
	req.Username = strings.TrimSpace(req.Username)
	return req, nil
}

// Login checks the credentials and starts a session whose favorites are
// restored from storage. A favorites load failure does not fail the login.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.AuthDisabled() {
			writeError(w, d, http.StatusNotFound, "login is disabled")
			return
		}

		req, err := readLogin(w, r)
		if err != nil || req.Username == "" || req.Password == "" {
			writeError(w, d, http.StatusBadRequest, "username and password are required")
			return
		}

		id, err := d.Auth.Login(req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				d.Logger.Info("login rejected", logger.String("username", req.Username))
				writeError(w, d, http.StatusUnauthorized, "username/password is incorrect")
				return
			}
			writeError(w, d, http.StatusInternalServerError, "login failed")
			return
		}

		// Replace any previous session held by this browser.
		if prev := currentSessionID(r, d); prev != "" {
			d.Sessions.Delete(prev)
		}

		s, loadErr := mw.StartSession(r.Context(), w, d, id.Username, id.Name)
		if s == nil {
			d.Logger.Error("failed to start session",
				logger.String("username", id.Username),
				logger.Error(loadErr))
			writeError(w, d, http.StatusInternalServerError, "login failed")
			return
		}

		resp := describeSession(s)
		if loadErr != nil {
			d.Logger.Warn("saved favorites unavailable",
				logger.String("username", id.Username),
				logger.Error(loadErr))
			resp.Notice = "saved favorites could not be loaded"
		}
		d.Logger.Info("user logged in", logger.String("username", id.Username))
		writeJSON(w, d, http.StatusOK, resp)
	}
}

func currentSessionID(r *http.Request, d deps.Deps) string {
	c, err := r.Cookie(d.Auth.CookieName())
	if err != nil || c.Value == "" {
		return ""
	}
	claims, err := d.Auth.ParseToken(c.Value)
	if err != nil {
		return ""
	}
	return claims.SessionID
}

// Logout ends the session. Favorites were persisted on every change, so
// nothing is lost.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s, ok := mw.SessionFrom(r.Context()); ok {
			d.Sessions.Delete(s.ID)
			if s.Username != "" {
				d.Logger.Info("user logged out", logger.String("username", s.Username))
			}
		}
		mw.ClearSession(w, d)
		w.WriteHeader(http.StatusNoContent)
	}
}

// Session describes the caller's session.
func Session(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := mw.SessionFrom(r.Context())
		writeJSON(w, d, http.StatusOK, describeSession(s))
	}
}
