package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/georepo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/georepo/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/georepo/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:      d.LoginRateLimit,
		PerMinute:  d.LoginRateLimit,
		IdleTTL:    15 * time.Minute,
		TrustProxy: d.TrustProxy,
	}, d.Logger)

	r.With(limit).Post("/login", handlers.Login(d))
	r.With(mw.LoadSession(d)).Post("/logout", handlers.Logout(d))
}
