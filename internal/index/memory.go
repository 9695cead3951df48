package index

import (
	"sync"
	"time"

	"github.com/flyee/flights/internal/domain"
)

// FlightIndex holds the authoritative in-memory flight dataset for the
// process lifetime.
//
// The record slice is immutable once published: Update builds everything off
// to the side and swaps it in under the lock, so concurrent readers always
// see one consistent snapshot and Snapshot can hand out the slice without
// copying.
type FlightIndex struct {
	mu         sync.RWMutex
	flights    []*domain.FlightRecord // load order, never re-sorted
	byID       map[string]*domain.FlightRecord
	views      map[string]int64
	lastReload time.Time
}

func NewFlightIndex() *FlightIndex {
	return &FlightIndex{
		byID:  make(map[string]*domain.FlightRecord),
		views: make(map[string]int64),
	}
}

// Update replaces the whole dataset. View counters survive reloads for ids
// that still exist.
func (idx *FlightIndex) Update(flights []*domain.FlightRecord) {
	byID := make(map[string]*domain.FlightRecord, len(flights))
	for _, f := range flights {
		byID[f.ID] = f
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	views := make(map[string]int64, len(flights))
	for id, n := range idx.views {
		if _, ok := byID[id]; ok {
			views[id] = n
		}
	}

	idx.flights = flights
	idx.byID = byID
	idx.views = views
	idx.lastReload = time.Now()
}

// Snapshot returns the current dataset in load order. Callers must treat the
// slice as read-only.
func (idx *FlightIndex) Snapshot() []*domain.FlightRecord {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.flights
}

// Get retrieves a flight by its canonical id.
func (idx *FlightIndex) Get(id string) (*domain.FlightRecord, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	f, ok := idx.byID[id]
	return f, ok
}

// Count returns the number of loaded flights.
func (idx *FlightIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.flights)
}

// IncrementViews bumps the local view counter for a flight. Returns false if
// the id is unknown.
func (idx *FlightIndex) IncrementViews(id string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.byID[id]; !ok {
		return false
	}
	idx.views[id]++
	return true
}

// Views returns the local view counter for a flight.
func (idx *FlightIndex) Views(id string) int64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.views[id]
}

// LastReload returns when the dataset was last published.
func (idx *FlightIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
