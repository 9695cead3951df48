package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/flyee/flights/internal/httpserver/deps"
	"github.com/flyee/flights/internal/httpserver/handlers"
	"github.com/flyee/flights/internal/httpserver/mw"
)

func init() { Register(registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	r.With(mw.AdminOnly(d.AdminCIDRs, d.TrustProxy, d.Logger)).Post("/reload", handlers.Reload(d))
}
