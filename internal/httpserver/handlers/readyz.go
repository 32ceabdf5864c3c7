package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/georepo/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Source string `json:"source,omitempty"`
}

// Readyz reports ready once a catalog snapshot has been installed, from
// the workbook or from Redis. A snapshot made only of load failures
// still counts: every category can answer with its notice.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready := !d.MemoryIndex.GetLastReload().IsZero()
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, d, status, readyzResponse{
			Ready:  ready,
			Source: d.MemoryIndex.Source(),
		})
	}
}
