package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flyee/flights/internal/booking"
)

// Response envelope shared by every endpoint: {"success": ..., ...}. The
// web client switches on the success flag and the message string, so the
// shapes here are part of the API contract.

type dataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type listResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Count   int         `json:"count"`
}

type errorResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Errors  []booking.FieldError `json:"errors,omitempty"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Time    string `json:"time,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, dataResponse{Success: true, Data: data})
}

func writeList(w http.ResponseWriter, data interface{}, count int) {
	writeJSON(w, http.StatusOK, listResponse{Success: true, Data: data, Count: count})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

func writeValidationError(w http.ResponseWriter, verr booking.ValidationError) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Success: false,
		Message: "Validation failed",
		Errors:  verr,
	})
}

// NotFoundRoute is the fallback for unmatched routes.
func NotFoundRoute(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}
