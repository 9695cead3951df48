package handlers

import (
	"net/http"

	"github.com/flyee/flights/internal/httpserver/deps"
	"github.com/flyee/flights/internal/logger"
)

// Reload handles POST /api/reload: triggers an immediate dataset reload.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual dataset reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, messageResponse{
				Success: true,
				Message: "Reload triggered",
			})
		default:
			d.Logger.Warn("dataset reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeError(w, http.StatusTooManyRequests, "Reload already in progress")
		}
	}
}
