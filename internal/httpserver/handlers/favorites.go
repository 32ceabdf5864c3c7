package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/georepo/internal/domain"
	"github.com/MrSnakeDoc/georepo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/georepo/internal/httpserver/mw"
)

type toggleResponse struct {
	Key       domain.FavoriteKey `json:"key"`
	Favorited bool               `json:"favorited"`
	Persisted bool               `json:"persisted"`
}

type clearResponse struct {
	Cleared   int  `json:"cleared"`
	Persisted bool `json:"persisted"`
}

// ToggleFavorite flips one record in the session's favorites.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := mw.SessionFrom(r.Context())

		category, err := domain.ParseCategory(chi.URLParam(r, "category"))
		if err != nil || !category.IsSheet() {
			writeError(w, d, http.StatusNotFound, "unknown category")
			return
		}
		row, err := strconv.Atoi(chi.URLParam(r, "row"))
		if err != nil || row < 0 {
			writeError(w, d, http.StatusBadRequest, "row must be a non-negative integer")
			return
		}

		on, err := d.ViewModel.ToggleFavorite(s.Ledger, category, row)
		if err != nil {
			writeError(w, d, http.StatusNotFound, err.Error())
			return
		}

		writeJSON(w, d, http.StatusOK, toggleResponse{
			Key:       domain.FavoriteKey{Category: category, Row: row},
			Favorited: on,
			Persisted: persist(r, d, s),
		})
	}
}

// ClearFavorites empties the session's favorites.
func ClearFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := mw.SessionFrom(r.Context())

		n := s.Ledger.Len()
		s.Ledger.Clear()

		writeJSON(w, d, http.StatusOK, clearResponse{
			Cleared:   n,
			Persisted: persist(r, d, s),
		})
	}
}
