package domain

import "time"

// Booking statuses. A booking starts pending and moves to confirmed or
// cancelled via update; there is no payment step anywhere in this system.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking is a stored booking request. The field names follow the JSON
// contract the web client already uses.
type Booking struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM, one of the daily slots
	Service   string    `json:"service"`
	Notes     string    `json:"notes,omitempty"`
	FlightID  string    `json:"flightId,omitempty"`
	SeatClass string    `json:"seatClass,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
