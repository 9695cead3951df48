package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/flyee/flights/internal/domain"
	"github.com/flyee/flights/internal/httpserver/deps"
	"github.com/flyee/flights/internal/index"
	"github.com/flyee/flights/internal/logger"
	"github.com/flyee/flights/internal/query"
)

func testDeps(flights []*domain.FlightRecord) deps.Deps {
	idx := index.NewFlightIndex()
	idx.Update(flights)
	return deps.Deps{
		Logger:      logger.Nop(),
		FlightIndex: idx,
		Flights:     query.NewService(idx, logger.Nop()),
	}
}

func sampleFlights() []*domain.FlightRecord {
	return []*domain.FlightRecord{
		{ID: "fl-1", FlightNumber: "FY100", Airline: "Flyee Airways", From: "JFK", To: "LHR", FromCountry: "USA", ToCountry: "UK", Date: "2025-06-01", Price: 450},
		{ID: "fl-2", FlightNumber: "FY200", Airline: "Flyee Airways", From: "LAX", To: "NRT", FromCountry: "USA", ToCountry: "Japan", Date: "2025-06-02", Price: 820},
		{ID: "fl-3", FlightNumber: "AZ300", Airline: "Azure Pacific", From: "CDG", To: "JFK", FromCountry: "France", ToCountry: "USA", Date: "2025-06-01", Price: 390},
	}
}

func doSearch(t *testing.T, d deps.Deps, rawQuery string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/flights?"+rawQuery, nil)
	rec := httptest.NewRecorder()
	SearchFlights(d).ServeHTTP(rec, req)
	return rec
}

func TestSearchFlightsEnvelope(t *testing.T) {
	rec := doSearch(t, testDeps(sampleFlights()), "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body struct {
		Success bool                    `json:"success"`
		Data    []domain.FlightRecord   `json:"data"`
		Count   int                     `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Success {
		t.Error("success should be true")
	}
	if body.Count != 3 || len(body.Data) != 3 {
		t.Errorf("count = %d, len(data) = %d, want 3", body.Count, len(body.Data))
	}
}

func TestSearchFlightsFilters(t *testing.T) {
	d := testDeps(sampleFlights())

	tests := []struct {
		name     string
		rawQuery string
		wantIDs  []string
	}{
		{"origin substring", "from=jfk", []string{"fl-1"}},
		{"country overrides airport param", "from=CDG&fromCountry=usa", []string{"fl-1", "fl-2"}},
		{"date exact", "date=2025-06-01", []string{"fl-1", "fl-3"}},
		{"price band", "minPrice=400&maxPrice=500", []string{"fl-1"}},
		{"free text airline", "q=azure", []string{"fl-3"}},
		{"combined no match", "from=lax&maxPrice=100", nil},
		{"limit", "limit=2", []string{"fl-1", "fl-2"}},
		{"limit zero", "limit=0", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doSearch(t, d, tt.rawQuery)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var body struct {
				Data  []domain.FlightRecord `json:"data"`
				Count int                   `json:"count"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(body.Data) != len(tt.wantIDs) {
				t.Fatalf("got %d results, want %d", len(body.Data), len(tt.wantIDs))
			}
			if body.Count != len(tt.wantIDs) {
				t.Errorf("count = %d, want %d", body.Count, len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if body.Data[i].ID != want {
					t.Errorf("data[%d].ID = %s, want %s", i, body.Data[i].ID, want)
				}
			}
		})
	}
}

func TestSearchFlightsRejectsMalformedNumbers(t *testing.T) {
	d := testDeps(sampleFlights())

	for _, rawQuery := range []string{"minPrice=abc", "maxPrice=12,50", "limit=-1", "limit=2.5"} {
		rec := doSearch(t, d, rawQuery)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%q: status = %d, want 400", rawQuery, rec.Code)
			continue
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Success {
			t.Errorf("%q: success should be false", rawQuery)
		}
		if body.Message == "" {
			t.Errorf("%q: error message should name the bad parameter", rawQuery)
		}
	}
}

func flightByIDRouter(d deps.Deps) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/flights/{id}", FlightByID(d))
	return r
}

func TestFlightByID(t *testing.T) {
	d := testDeps(sampleFlights())
	router := flightByIDRouter(d)

	req := httptest.NewRequest(http.MethodGet, "/api/flights/fl-2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Success bool                `json:"success"`
		Data    domain.FlightRecord `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Success || body.Data.ID != "fl-2" {
		t.Errorf("got success=%v id=%s", body.Success, body.Data.ID)
	}

	if got := d.FlightIndex.Views("fl-2"); got != 1 {
		t.Errorf("Views(fl-2) = %d, want 1", got)
	}
}

func TestFlightByFlightNumber(t *testing.T) {
	router := flightByIDRouter(testDeps(sampleFlights()))

	req := httptest.NewRequest(http.MethodGet, "/api/flights/AZ300", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Data domain.FlightRecord `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.ID != "fl-3" {
		t.Errorf("data.id = %s, want fl-3", body.Data.ID)
	}
}

func TestFlightByIDNotFound(t *testing.T) {
	router := flightByIDRouter(testDeps(sampleFlights()))

	req := httptest.NewRequest(http.MethodGet, "/api/flights/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Success || body.Message != "Flight not found" {
		t.Errorf("got success=%v message=%q", body.Success, body.Message)
	}
}

func TestHealth(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := testDeps(nil)
	d.TimeNow = func() time.Time { return fixed }

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	Health(d).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", cc)
	}
	var body messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Success || body.Message != "API running" {
		t.Errorf("got success=%v message=%q", body.Success, body.Message)
	}
	if body.Time != "2025-06-01T12:00:00Z" {
		t.Errorf("time = %q", body.Time)
	}
}

func TestReload(t *testing.T) {
	d := testDeps(nil)
	d.ReloadTrigger = make(chan struct{}, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rec := httptest.NewRecorder()
	Reload(d).ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}

	// Channel already holds a pending trigger: next call must back off.
	rec = httptest.NewRecorder()
	Reload(d).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reload", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
}
