package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/flyee/flights/internal/httpserver/deps"
	"github.com/flyee/flights/internal/httpserver/handlers"
	"github.com/flyee/flights/internal/httpserver/mw"
)

func init() { Register(registerBookings) }

func registerBookings(r chi.Router, d deps.Deps) {
	// Writes are rate limited per IP; reads are not.
	limited := r.With(mw.RateLimit(d.BookingPerMinute, d.BookingBurst, d.TrustProxy))
	limited.Post("/bookings", handlers.CreateBooking(d))
	limited.Put("/bookings/{id}", handlers.UpdateBooking(d))
	limited.Delete("/bookings/{id}", handlers.DeleteBooking(d))

	r.Get("/bookings", handlers.ListBookings(d))
	r.Get("/bookings/{id}", handlers.BookingByID(d))
	r.Get("/availability/{date}", handlers.Availability(d))
}
