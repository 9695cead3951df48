package mw

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the browser frontend, which is served from another origin, to
// call the API. Origins default to any when the list is empty, matching the
// permissive cors() setup of the original service.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
}
