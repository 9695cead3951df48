package domain

import "encoding/json"

// FlightRecord is one row of the static flight dataset.
//
// Only the fields the query service interprets are typed. Everything else the
// dataset carries (depart/arrive times, duration, stops, amenities, seats,
// rating, ...) is presentational and rides along untouched in Extra so the
// API returns records exactly as they were loaded.
//
// A FlightRecord is immutable after load. ID is unique across the dataset.
type FlightRecord struct {
	// ID is the canonical unique identifier.
	ID string

	// FlightNumber is the airline-assigned code (ex: FL-204). Lookups accept
	// it as an alternate key to ID.
	FlightNumber string

	// Airline is the display name.
	Airline string

	// From and To are location codes or names; the source data is not
	// consistent about which, so matching is substring-based.
	From string
	To   string

	// FromCountry and ToCountry are optional country names. When present they
	// participate in origin/destination matching as fallback fields.
	FromCountry string
	ToCountry   string

	// Date is the departure date in YYYY-MM-DD form.
	Date string

	// Price is the ticket price, non-negative.
	Price float64

	// Extra holds every dataset key not mapped above, verbatim.
	Extra map[string]json.RawMessage
}

// flightJSON is the wire shape of the typed fields.
type flightJSON struct {
	ID           string  `json:"id"`
	FlightNumber string  `json:"flightNumber"`
	Airline      string  `json:"airline"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	FromCountry  string  `json:"fromCountry,omitempty"`
	ToCountry    string  `json:"toCountry,omitempty"`
	Date         string  `json:"date"`
	Price        float64 `json:"price"`
}

// typedKeys are the JSON keys owned by the typed fields; everything else goes
// to Extra on unmarshal and is merged back on marshal.
var typedKeys = map[string]struct{}{
	"id": {}, "flightNumber": {}, "airline": {},
	"from": {}, "to": {}, "fromCountry": {}, "toCountry": {},
	"date": {}, "price": {},
}

func (f *FlightRecord) UnmarshalJSON(data []byte) error {
	var tf flightJSON
	if err := json.Unmarshal(data, &tf); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range typedKeys {
		delete(raw, key)
	}
	if len(raw) == 0 {
		raw = nil
	}

	*f = FlightRecord{
		ID:           tf.ID,
		FlightNumber: tf.FlightNumber,
		Airline:      tf.Airline,
		From:         tf.From,
		To:           tf.To,
		FromCountry:  tf.FromCountry,
		ToCountry:    tf.ToCountry,
		Date:         tf.Date,
		Price:        tf.Price,
		Extra:        raw,
	}
	return nil
}

func (f FlightRecord) MarshalJSON() ([]byte, error) {
	typed, err := json.Marshal(flightJSON{
		ID:           f.ID,
		FlightNumber: f.FlightNumber,
		Airline:      f.Airline,
		From:         f.From,
		To:           f.To,
		FromCountry:  f.FromCountry,
		ToCountry:    f.ToCountry,
		Date:         f.Date,
		Price:        f.Price,
	})
	if err != nil {
		return nil, err
	}
	if len(f.Extra) == 0 {
		return typed, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(typed, &merged); err != nil {
		return nil, err
	}
	for key, val := range f.Extra {
		if _, owned := typedKeys[key]; owned {
			continue
		}
		merged[key] = val
	}
	return json.Marshal(merged)
}
