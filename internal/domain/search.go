package domain

import "strings"

// SearchFilters carries one optional constraint per filter dimension.
// A nil pointer or empty string means "no constraint from this dimension";
// supplied dimensions are combined with logical AND.
type SearchFilters struct {
	Origin      string   // substring match over originFields
	Destination string   // substring match over destinationFields
	Date        string   // exact match on Date
	MinPrice    *float64 // Price >= MinPrice (inclusive)
	MaxPrice    *float64 // Price <= MaxPrice (inclusive)
	Query       string   // free text, substring match over freeTextFields
}

// Candidate fields per dimension, in check order. The dataset mixes legacy
// and canonical naming (from vs fromCountry), so each dimension is an OR
// across its candidates rather than a single field lookup.
func originFields(f *FlightRecord) []string {
	return []string{f.FromCountry, f.From}
}

func destinationFields(f *FlightRecord) []string {
	return []string{f.ToCountry, f.To}
}

func freeTextFields(f *FlightRecord) []string {
	return []string{f.Airline, f.FlightNumber, f.From, f.To}
}

// foldedFilters is SearchFilters with the text needles case-folded once,
// so filtering stays a single predicate evaluation per record.
type foldedFilters struct {
	origin      string
	destination string
	date        string
	minPrice    *float64
	maxPrice    *float64
	query       string
}

func fold(flt SearchFilters) foldedFilters {
	return foldedFilters{
		origin:      strings.ToLower(strings.TrimSpace(flt.Origin)),
		destination: strings.ToLower(strings.TrimSpace(flt.Destination)),
		date:        flt.Date,
		minPrice:    flt.MinPrice,
		maxPrice:    flt.MaxPrice,
		query:       strings.ToLower(strings.TrimSpace(flt.Query)),
	}
}

// anyContainsFold reports whether any candidate field contains needle,
// case-insensitively. Absent (empty) fields never match but never fail the
// whole evaluation either; a sibling candidate may still match.
func anyContainsFold(fields []string, needle string) bool {
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func matches(f *FlightRecord, flt foldedFilters) bool {
	if flt.origin != "" && !anyContainsFold(originFields(f), flt.origin) {
		return false
	}
	if flt.destination != "" && !anyContainsFold(destinationFields(f), flt.destination) {
		return false
	}
	if flt.date != "" && f.Date != flt.date {
		return false
	}
	if flt.minPrice != nil && f.Price < *flt.minPrice {
		return false
	}
	if flt.maxPrice != nil && f.Price > *flt.maxPrice {
		return false
	}
	if flt.query != "" && !anyContainsFold(freeTextFields(f), flt.query) {
		return false
	}
	return true
}

// FilterFlights returns the records satisfying every supplied filter, in the
// original order. The input slice is never mutated.
func FilterFlights(flights []*FlightRecord, flt SearchFilters) []*FlightRecord {
	folded := fold(flt)
	results := make([]*FlightRecord, 0, len(flights))
	for _, f := range flights {
		if matches(f, folded) {
			results = append(results, f)
		}
	}
	return results
}
