package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/georepo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/georepo/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/georepo/internal/httpserver/mw"
)

func init() { Register(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	api := r.With(mw.LoadSession(d), mw.RequireSession)
	api.Get("/api/session", handlers.Session(d))
	api.Get("/api/categories", handlers.Categories(d))
	api.Get("/api/catalog/{category}", handlers.Catalog(d))
	api.Post("/api/favorites/{category}/{row}", handlers.ToggleFavorite(d))
	api.Delete("/api/favorites", handlers.ClearFavorites(d))
	api.Get("/api/visitors", handlers.Visitors(d))
}
