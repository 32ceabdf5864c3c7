package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/georepo/internal/domain"
	"github.com/MrSnakeDoc/georepo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/georepo/internal/httpserver/mw"
	"github.com/MrSnakeDoc/georepo/internal/logger"
	"github.com/MrSnakeDoc/georepo/internal/session"
	"github.com/MrSnakeDoc/georepo/internal/viewmodel"
)

type categorySummary struct {
	Category domain.Category `json:"category"`
	Label    string          `json:"label"`
	Count    int             `json:"count"`
	Notice   string          `json:"notice,omitempty"`
}

type categoriesResponse struct {
	Categories []categorySummary `json:"categories"`
	Version    string            `json:"version,omitempty"`
	Source     string            `json:"source,omitempty"`
}

// Categories lists the sheet categories with their record counts, then
// the favorites pseudo-category with the session's favorite count.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts := d.MemoryIndex.Counts()
		failures := d.MemoryIndex.Failures()

		resp := categoriesResponse{
			Categories: make([]categorySummary, 0, len(domain.SheetCategories)+1),
			Version:    d.MemoryIndex.Version(),
			Source:     d.MemoryIndex.Source(),
		}
		for _, c := range domain.SheetCategories {
			sum := categorySummary{Category: c, Label: c.Label(), Count: counts[c]}
			if err, failed := failures[c]; failed {
				sum.Notice = err.Error()
			}
			resp.Categories = append(resp.Categories, sum)
		}

		favorites := 0
		if s, ok := mw.SessionFrom(r.Context()); ok {
			favorites = s.Ledger.Len()
		}
		resp.Categories = append(resp.Categories, categorySummary{
			Category: domain.CategoryFavorites,
			Label:    domain.CategoryFavorites.Label(),
			Count:    favorites,
		})

		writeJSON(w, d, http.StatusOK, resp)
	}
}

// Catalog renders one category page.
//
//	GET /api/catalog/{category}?q=soil&type=Soil&type=Climate&sort=asc&view=compact
func Catalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := mw.SessionFrom(r.Context())

		category, err := domain.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			writeError(w, d, http.StatusNotFound, err.Error())
			return
		}

		q := r.URL.Query()
		req := viewmodel.Request{
			Category: category,
			Search:   q.Get("q"),
			Types:    splitTypes(q["type"]),
			Sort:     domain.ParseSortOrder(q.Get("sort")),
			View:     viewmodel.ParseViewMode(q.Get("view")),
		}

		page, err := d.ViewModel.Render(r.Context(), req, s.Ledger)
		if err != nil {
			if errors.Is(err, r.Context().Err()) {
				return
			}
			writeError(w, d, http.StatusBadRequest, err.Error())
			return
		}

		if rel := page.Relocation; rel != nil && s.Ledger.CompareAndRestore(rel.From, rel.To) {
			persist(r, d, s)
		}

		writeJSON(w, d, http.StatusOK, page)
	}
}

// splitTypes accepts both repeated and comma separated type parameters.
func splitTypes(values []string) []string {
	var out []string
	for _, v := range values {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

// persist saves the session ledger. On failure the in-memory ledger
// stays authoritative for the session.
func persist(r *http.Request, d deps.Deps, s *session.Session) bool {
	if err := d.Sessions.Persist(r.Context(), s); err != nil {
		d.Logger.Warn("favorites not persisted",
			logger.String("username", s.Username),
			logger.Error(err))
		return false
	}
	return true
}
