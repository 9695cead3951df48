package query

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/flyee/flights/internal/domain"
	"github.com/flyee/flights/internal/index"
	"github.com/flyee/flights/internal/logger"
)

func newTestService(flights []*domain.FlightRecord) *Service {
	idx := index.NewFlightIndex()
	idx.Update(flights)
	return NewService(idx, logger.Nop())
}

// warnRecorder captures Warn messages so collision logging can be asserted.
type warnRecorder struct {
	logger.Logger
	warns []string
}

func newWarnRecorder() *warnRecorder {
	return &warnRecorder{Logger: logger.Nop()}
}

func (r *warnRecorder) Warn(msg string, _ ...zap.Field) {
	r.warns = append(r.warns, msg)
}

func newRecordedService(flights []*domain.FlightRecord) (*Service, *warnRecorder) {
	idx := index.NewFlightIndex()
	idx.Update(flights)
	rec := newWarnRecorder()
	return NewService(idx, rec), rec
}

func fixtures() []*domain.FlightRecord {
	return []*domain.FlightRecord{
		{ID: "1", FlightNumber: "AA1", Airline: "Acme Air", From: "NYC", To: "LAX", Date: "2024-05-01", Price: 200},
		{ID: "2", FlightNumber: "BB2", Airline: "Best Air", From: "LAX", To: "NYC", Date: "2024-05-02", Price: 150},
		{ID: "3", FlightNumber: "CC3", Airline: "Cirrus", From: "BER", To: "BCN", Date: "2024-05-03", Price: 90},
		{ID: "4", FlightNumber: "DD4", Airline: "Delta Wing", From: "SFO", To: "NRT", Date: "2024-05-01", Price: 800},
		{ID: "5", FlightNumber: "EE5", Airline: "Echo Jet", From: "ORD", To: "MIA", Date: "2024-05-04", Price: 120},
	}
}

func intptr(v int) *int { return &v }

func TestSearchNoFiltersReturnsAllInOrder(t *testing.T) {
	s := newTestService(fixtures())

	res := s.Search(domain.SearchFilters{}, nil)
	if res.Count != 5 || len(res.Results) != 5 {
		t.Fatalf("Search() count = %d, len = %d, want 5", res.Count, len(res.Results))
	}
	for i, want := range []string{"1", "2", "3", "4", "5"} {
		if res.Results[i].ID != want {
			t.Errorf("result[%d].ID = %s, want %s", i, res.Results[i].ID, want)
		}
	}
}

func TestSearchLimitTruncatesAndCountFollows(t *testing.T) {
	s := newTestService(fixtures())

	res := s.Search(domain.SearchFilters{}, intptr(2))
	if len(res.Results) != 2 {
		t.Fatalf("limit 2 returned %d results", len(res.Results))
	}
	if res.Results[0].ID != "1" || res.Results[1].ID != "2" {
		t.Errorf("limit must keep the first records in order, got %s, %s",
			res.Results[0].ID, res.Results[1].ID)
	}
	if res.Count != 2 {
		t.Errorf("count = %d, want 2 (count reflects the truncated result)", res.Count)
	}
}

func TestSearchLimitZeroIsEmpty(t *testing.T) {
	s := newTestService(fixtures())

	res := s.Search(domain.SearchFilters{}, intptr(0))
	if len(res.Results) != 0 || res.Count != 0 {
		t.Errorf("limit 0: got %d results, count %d", len(res.Results), res.Count)
	}
}

func TestSearchLimitLargerThanResultSet(t *testing.T) {
	s := newTestService(fixtures())

	res := s.Search(domain.SearchFilters{}, intptr(50))
	if res.Count != 5 {
		t.Errorf("count = %d, want 5", res.Count)
	}
}

func TestSearchResultsAreSubsetSatisfyingFilters(t *testing.T) {
	s := newTestService(fixtures())
	min := 100.0

	res := s.Search(domain.SearchFilters{MinPrice: &min}, nil)
	if res.Count == 0 {
		t.Fatal("expected matches")
	}
	for _, f := range res.Results {
		if f.Price < min {
			t.Errorf("record %s violates minPrice: %v", f.ID, f.Price)
		}
	}
}

func TestGetByIDExactID(t *testing.T) {
	s := newTestService(fixtures())

	f, err := s.GetByID("3")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if f.ID != "3" {
		t.Errorf("GetByID() = %s, want 3", f.ID)
	}
}

func TestGetByIDFallsBackToFlightNumber(t *testing.T) {
	s := newTestService(fixtures())

	f, err := s.GetByID("BB2")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if f.ID != "2" {
		t.Errorf("GetByID(BB2) = %s, want record 2", f.ID)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	s := newTestService(fixtures())

	if _, err := s.GetByID("does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestGetByIDFirstMatchWinsOnCollision(t *testing.T) {
	// Record 1's flightNumber equals record 2's id. Load order wins: the
	// flightNumber match on record 1 comes first, and the shadowed id is
	// flagged.
	s, rec := newRecordedService([]*domain.FlightRecord{
		{ID: "a", FlightNumber: "b", Airline: "Acme", From: "X", To: "Y", Date: "2024-01-01", Price: 1},
		{ID: "b", FlightNumber: "z", Airline: "Best", From: "X", To: "Y", Date: "2024-01-02", Price: 2},
	})

	f, err := s.GetByID("b")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if f.ID != "a" {
		t.Errorf("GetByID(b) = %s, want first match a", f.ID)
	}
	if len(rec.warns) != 1 {
		t.Errorf("collision should be logged once, got %d warnings", len(rec.warns))
	}
}

func TestGetByIDWarnsWhenIDShadowsFlightNumber(t *testing.T) {
	// Reverse load order: the id match comes first, a later record's
	// flightNumber equals the key. The id record still wins but the shadowed
	// flightNumber is flagged.
	s, rec := newRecordedService([]*domain.FlightRecord{
		{ID: "k", FlightNumber: "z", Airline: "Acme", From: "X", To: "Y", Date: "2024-01-01", Price: 1},
		{ID: "other", FlightNumber: "k", Airline: "Best", From: "X", To: "Y", Date: "2024-01-02", Price: 2},
	})

	f, err := s.GetByID("k")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if f.ID != "k" {
		t.Errorf("GetByID(k) = %s, want id match k", f.ID)
	}
	if len(rec.warns) != 1 {
		t.Errorf("collision should be logged once, got %d warnings", len(rec.warns))
	}
}

func TestGetByIDNoWarningWithoutCollision(t *testing.T) {
	s, rec := newRecordedService(fixtures())

	if _, err := s.GetByID("3"); err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if _, err := s.GetByID("BB2"); err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(rec.warns) != 0 {
		t.Errorf("no collision in fixtures, got warnings %v", rec.warns)
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	s := newTestService(nil)

	res := s.Search(domain.SearchFilters{}, nil)
	if res.Count != 0 || len(res.Results) != 0 {
		t.Errorf("empty index: got %d results", len(res.Results))
	}
}
