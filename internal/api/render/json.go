// Package render writes successful API responses.
package render

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// JSON writes v with the given status. Encoding failures after the header
// has been sent can only be logged.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && r != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("encode response")
	}
}

// NoContent answers 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
