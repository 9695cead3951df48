package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/flyee/flights/internal/domain"
	"github.com/flyee/flights/internal/httpserver/deps"
	"github.com/flyee/flights/internal/logger"
	"github.com/flyee/flights/internal/query"
)

// SearchFlights handles GET /api/flights.
//
// Origin and destination each accept a legacy and a canonical parameter
// (from/fromCountry, to/toCountry); the country variant wins when both are
// sent, which is what the previous implementation did with
// `fromCountry || from`. Numeric parameters are parsed strictly: a malformed
// minPrice/maxPrice/limit is a 400, never a silently unfiltered response.
func SearchFlights(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()

		flt := domain.SearchFilters{
			Origin:      firstNonEmpty(params, "fromCountry", "from"),
			Destination: firstNonEmpty(params, "toCountry", "to"),
			Date:        strings.TrimSpace(params.Get("date")),
			Query:       params.Get("q"),
		}

		var err error
		if flt.MinPrice, err = parseFloatParam(params, "minPrice"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if flt.MaxPrice, err = parseFloatParam(params, "maxPrice"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		limit, err := parseLimitParam(params)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res := d.Flights.Search(flt, limit)
		writeList(w, res.Results, res.Count)
	}
}

// FlightByID handles GET /api/flights/{id}. The key matches either the
// canonical id or the flightNumber. A hit bumps the view counters.
func FlightByID(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "id")

		flight, err := d.Flights.GetByID(key)
		if err != nil {
			if errors.Is(err, query.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Flight not found")
				return
			}
			d.Logger.Error("flight lookup failed",
				logger.String("key", key),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to fetch flight")
			return
		}

		d.FlightIndex.IncrementViews(flight.ID)
		if d.Store != nil {
			// Best effort; a Redis hiccup must not fail the lookup.
			if err := d.Store.IncrementViews(r.Context(), flight.ID); err != nil {
				d.Logger.Debug("failed to persist view counter",
					logger.String("flight_id", flight.ID),
					logger.Error(err))
			}
		}

		writeData(w, http.StatusOK, flight)
	}
}

// firstNonEmpty returns the first supplied, non-empty parameter. An empty
// string is treated as absent, matching query-string semantics.
func firstNonEmpty(params url.Values, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(params.Get(name)); v != "" {
			return v
		}
	}
	return ""
}

func parseFloatParam(params url.Values, name string) (*float64, error) {
	raw := strings.TrimSpace(params.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q is not a number", name, raw)
	}
	return &v, nil
}

func parseLimitParam(params url.Values) (*int, error) {
	raw := strings.TrimSpace(params.Get("limit"))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("invalid limit: %q is not a non-negative integer", raw)
	}
	return &v, nil
}
