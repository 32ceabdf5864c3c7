package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/georepo/internal/domain"
	"github.com/MrSnakeDoc/georepo/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool              `json:"ok"`
	Records    *int              `json:"records,omitempty"`
	LastReload string            `json:"last_reload,omitempty"`
	Version    string            `json:"version,omitempty"`
	Source     string            `json:"source,omitempty"`
	Mode       string            `json:"mode,omitempty"`
	Impact     string            `json:"impact,omitempty"`
	Failures   map[string]string `json:"failures,omitempty"`
	Error      string            `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"workbook": workbookStatus(d),
			"redis":    checkRedis(r.Context(), d),
			"sessions": sessionStatus(d),
		}

		writeJSON(w, d, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

func workbookStatus(d deps.Deps) componentStatus {
	records := d.MemoryIndex.Count()
	lastReload := "never"
	if t := d.MemoryIndex.GetLastReload(); !t.IsZero() {
		lastReload = t.Format("2006-01-02 15:04:05")
	}

	var failures map[string]string
	if f := d.MemoryIndex.Failures(); len(f) > 0 {
		failures = make(map[string]string, len(f))
		for c, err := range f {
			failures[string(c)] = err.Error()
		}
	}

	return componentStatus{
		OK:         records > 0 && len(failures) < len(domain.SheetCategories),
		Records:    &records,
		LastReload: lastReload,
		Version:    d.MemoryIndex.Version(),
		Source:     d.WorkbookSource,
		Mode:       d.MemoryIndex.Source(),
		Failures:   failures,
	}
}

func sessionStatus(d deps.Deps) componentStatus {
	mode := "login"
	if d.AuthDisabled() {
		mode = "anonymous"
	}
	n := d.Sessions.Len()
	return componentStatus{OK: true, Records: &n, Mode: mode}
}

// overallStatus is "critical" when no catalog could be served, "degraded"
// when some category failed or Redis is unreachable, "ok" otherwise.
func overallStatus(components map[string]componentStatus) string {
	wb := components["workbook"]
	if !wb.OK {
		return "critical"
	}
	if len(wb.Failures) > 0 {
		return "degraded"
	}
	if rs, ok := components["redis"]; ok && !rs.OK && rs.Mode != "disabled" {
		return "degraded"
	}
	return "ok"
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "no-snapshot-fallback",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "snapshot-fallback-unavailable",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "snapshot-fallback-enabled",
	}
}
