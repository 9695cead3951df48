package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/flyee/flights/internal/httpserver/deps"
	"github.com/flyee/flights/internal/httpserver/handlers"
)

func init() { Register(registerFlights) }

func registerFlights(r chi.Router, d deps.Deps) {
	r.Get("/flights", handlers.SearchFlights(d))
	r.Get("/flights/{id}", handlers.FlightByID(d))
}
