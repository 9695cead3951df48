package mw

import (
	"net/http"

	"github.com/flyee/flights/internal/logger"
	"github.com/flyee/flights/internal/utils"
)

// AdminOnly restricts a route to the configured IPs/CIDRs. An empty list is a
// passthrough, so deployments without the setting keep working.
func AdminOnly(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		log.Debug("AdminOnly: no CIDRs configured, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Warn("admin endpoint rejected",
					logger.String("path", r.URL.Path),
					logger.String("ip", ip))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"success":false,"message":"Forbidden"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
