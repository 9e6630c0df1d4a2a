// Package response provides utilities for sending consistent HTTP responses.
// It includes helpers for JSON responses and standardized error responses.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/phuslu/log"
)

// ErrorResponse represents a structured error response returned by the API.
// The Details field is optional and can contain additional context about the error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// If data is nil, only the status code is sent (useful for 204 No Content).
// Encoding errors are logged; the status line has already been written.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error().Err(err).Msg("failed to encode JSON response")
		}
	}
}

// RespondError sends a structured error response with the given status code.
// The message should be a user-friendly error description.
// The details parameter can be an error string, a field map, or nil.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
//	response.RespondError(w, http.StatusNotFound, "holding not found", nil)
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
