package handlers

import (
	"net/http"
	"time"

	"github.com/flyee/flights/internal/httpserver/deps"
)

// Health handles GET /api/health.
func Health(d deps.Deps) http.HandlerFunc {
	now := d.TimeNow
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, messageResponse{
			Success: true,
			Message: "API running",
			Time:    now().UTC().Format(time.RFC3339),
		})
	}
}
