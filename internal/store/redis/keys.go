package redis

// Key layout. Everything lives under the "flights:" namespace so a shared
// Redis can host other apps.
const (
	KeyPrefixBooking = "flights:booking:" // booking:<id> -> booking JSON
	KeyAllBookings   = "flights:bookings" // set of booking ids
	KeyPrefixSlot    = "flights:slot:"    // slot:<date>:<time> -> booking id
	KeyPrefixViews   = "flights:views:"   // views:<flight id> -> counter
)

func BookingKey(id string) string {
	return KeyPrefixBooking + id
}

func SlotKey(date, slot string) string {
	return KeyPrefixSlot + date + ":" + slot
}

func ViewsKey(flightID string) string {
	return KeyPrefixViews + flightID
}
