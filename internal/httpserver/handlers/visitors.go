package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/georepo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/georepo/internal/logger"
)

type visitorsResponse struct {
	Visitors int64 `json:"visitors"`
}

func Visitors(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Visitors == nil {
			writeJSON(w, d, http.StatusOK, visitorsResponse{})
			return
		}
		n, err := d.Visitors.Visitors(r.Context())
		if err != nil {
			d.Logger.Warn("failed to read visitor count", logger.Error(err))
			writeError(w, d, http.StatusServiceUnavailable, "visitor count unavailable")
			return
		}
		writeJSON(w, d, http.StatusOK, visitorsResponse{Visitors: n})
	}
}
