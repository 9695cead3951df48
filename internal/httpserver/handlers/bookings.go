package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flyee/flights/internal/booking"
	"github.com/flyee/flights/internal/httpserver/deps"
	"github.com/flyee/flights/internal/logger"
)

// CreateBooking handles POST /api/bookings.
func CreateBooking(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !bookingsEnabled(w, d) {
			return
		}

		var req booking.CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		b, err := d.Bookings.Create(r.Context(), req)
		if err != nil {
			writeBookingError(w, d, err, "Failed to create booking")
			return
		}
		writeData(w, http.StatusCreated, b)
	}
}

// ListBookings handles GET /api/bookings.
func ListBookings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !bookingsEnabled(w, d) {
			return
		}

		bookings, err := d.Bookings.List(r.Context())
		if err != nil {
			writeBookingError(w, d, err, "Failed to fetch bookings")
			return
		}
		writeList(w, bookings, len(bookings))
	}
}

// BookingByID handles GET /api/bookings/{id}.
func BookingByID(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !bookingsEnabled(w, d) {
			return
		}

		b, err := d.Bookings.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeBookingError(w, d, err, "Failed to fetch booking")
			return
		}
		writeData(w, http.StatusOK, b)
	}
}

// UpdateBooking handles PUT /api/bookings/{id}.
func UpdateBooking(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !bookingsEnabled(w, d) {
			return
		}

		var req booking.UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		b, err := d.Bookings.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			writeBookingError(w, d, err, "Failed to update booking")
			return
		}
		writeData(w, http.StatusOK, b)
	}
}

// DeleteBooking handles DELETE /api/bookings/{id}.
func DeleteBooking(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !bookingsEnabled(w, d) {
			return
		}

		if err := d.Bookings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeBookingError(w, d, err, "Failed to delete booking")
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Booking deleted"})
	}
}

// Availability handles GET /api/availability/{date}.
func Availability(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !bookingsEnabled(w, d) {
			return
		}

		slots, err := d.Bookings.Availability(r.Context(), chi.URLParam(r, "date"))
		if err != nil {
			writeBookingError(w, d, err, "Failed to fetch availability")
			return
		}
		writeData(w, http.StatusOK, slots)
	}
}

func bookingsEnabled(w http.ResponseWriter, d deps.Deps) bool {
	if d.Bookings == nil {
		writeError(w, http.StatusServiceUnavailable, "Bookings are not available")
		return false
	}
	return true
}

func writeBookingError(w http.ResponseWriter, d deps.Deps, err error, fallback string) {
	var verr booking.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr)
	case errors.Is(err, booking.ErrNotFound):
		writeError(w, http.StatusNotFound, "Booking not found")
	case errors.Is(err, booking.ErrSlotTaken):
		writeError(w, http.StatusConflict, "Time slot is already booked")
	case errors.Is(err, booking.ErrUnknownFlight):
		writeError(w, http.StatusBadRequest, "Unknown flight")
	default:
		d.Logger.Error("booking operation failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
