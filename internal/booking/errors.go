package booking

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	// ErrSlotTaken means the requested date/time slot is already held by a
	// non-cancelled booking.
	ErrSlotTaken = errors.New("requested time slot is already booked")

	// ErrUnknownFlight means the referenced flightId is not in the dataset.
	ErrUnknownFlight = errors.New("unknown flight")
)
