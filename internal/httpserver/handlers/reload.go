package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/georepo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/georepo/internal/logger"
	"github.com/MrSnakeDoc/georepo/internal/utils"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// Reload asks the workbook reloader for an immediate, forced reload.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r, d.TrustProxy)

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual workbook reload triggered via endpoint",
				logger.String("remote_ip", ip))
			writeJSON(w, d, http.StatusAccepted, reloadResponse{
				Triggered: true,
				Message:   "reload triggered",
			})
		default:
			d.Logger.Warn("workbook reload already pending",
				logger.String("remote_ip", ip))
			writeJSON(w, d, http.StatusTooManyRequests, reloadResponse{
				Message: "reload already in progress, please wait",
			})
		}
	}
}
