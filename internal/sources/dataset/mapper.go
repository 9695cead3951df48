package dataset

import "github.com/flyee/flights/internal/domain"

// Mapper turns raw dataset records into the index-ready flight sequence.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// Map validates records while preserving dataset order. Records without an id,
// with a negative price, or with an id already seen are skipped; the skipped
// count is returned so the caller can log it. First occurrence wins on
// duplicate ids, keeping the id-uniqueness invariant without dropping the
// whole dataset.
func (m *Mapper) Map(records []domain.FlightRecord) ([]*domain.FlightRecord, int) {
	flights := make([]*domain.FlightRecord, 0, len(records))
	seen := make(map[string]bool, len(records))
	skipped := 0

	for i := range records {
		rec := &records[i]

		if rec.ID == "" || rec.Price < 0 || seen[rec.ID] {
			skipped++
			continue
		}

		seen[rec.ID] = true
		flights = append(flights, rec)
	}

	return flights, skipped
}
