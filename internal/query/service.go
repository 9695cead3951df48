package query

import (
	"errors"

	"github.com/flyee/flights/internal/domain"
	"github.com/flyee/flights/internal/index"
	"github.com/flyee/flights/internal/logger"
)

// ErrNotFound is returned when no record matches a lookup key.
var ErrNotFound = errors.New("flight not found")

// Service answers search queries over the flight index. It is stateless per
// call; all state lives in the index snapshot.
type Service struct {
	index *index.FlightIndex
	log   logger.Logger
}

func NewService(idx *index.FlightIndex, log logger.Logger) *Service {
	return &Service{
		index: idx,
		log:   log,
	}
}

// Result is a filtered flight sequence. Count always equals len(Results),
// including after limit truncation.
type Result struct {
	Results []*domain.FlightRecord
	Count   int
}

// Search filters the current snapshot. Filters are ANDed; order of the
// snapshot is preserved. A non-nil limit truncates the result to at most
// limit entries (limit 0 yields an empty result). Numeric filter validation
// happens at the API boundary, not here.
func (s *Service) Search(flt domain.SearchFilters, limit *int) Result {
	results := domain.FilterFlights(s.index.Snapshot(), flt)

	if limit != nil && *limit < len(results) {
		results = results[:*limit]
	}

	return Result{
		Results: results,
		Count:   len(results),
	}
}

// GetByID returns the first record in load order whose id or flightNumber
// equals key, or ErrNotFound.
//
// id is unique, so this is unambiguous unless a flightNumber collides with a
// different record's id. First match still wins then, but the scan continues
// far enough to log the collision, whichever key kind matched first.
func (s *Service) GetByID(key string) (*domain.FlightRecord, error) {
	var chosen *domain.FlightRecord
	chosenByNumber := false

	for _, f := range s.index.Snapshot() {
		if chosen == nil {
			if f.ID == key || f.FlightNumber == key {
				chosen = f
				chosenByNumber = f.ID != key
			}
			continue
		}
		if chosenByNumber && f.ID == key {
			s.log.Warn("flight number lookup shadows another record's id",
				logger.String("key", key),
				logger.String("matched_id", chosen.ID),
				logger.String("shadowed_id", f.ID))
			break
		}
		if !chosenByNumber && f.FlightNumber == key && f.ID != key {
			s.log.Warn("flight id lookup shadows another record's flight number",
				logger.String("key", key),
				logger.String("matched_id", chosen.ID),
				logger.String("shadowed_id", f.ID))
			break
		}
	}

	if chosen == nil {
		return nil, ErrNotFound
	}
	return chosen, nil
}
