// Package handlers implements the HTTP endpoints. Handlers depend on small
// service interfaces so they can be exercised with stubs.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aqtareen/Taqreeb/internal/api/problem"
	"github.com/aqtareen/Taqreeb/internal/validation"
)

const (
	msgInvalidBody  = "Invalid request body"
	msgBodyTooLarge = "Request body too large"
	msgInvalidID    = "Invalid id"
)

// decodeJSON reads the request body into dst. It answers 413 when the body
// exceeded the RequestSize limit and 400 for anything unparsable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			problem.Write(w, r, http.StatusRequestEntityTooLarge, msgBodyTooLarge, err)
			return false
		}
		problem.Write(w, r, http.StatusBadRequest, msgInvalidBody, err)
		return false
	}
	return true
}

// pathID parses a positive integer path parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		problem.Write(w, r, http.StatusBadRequest, msgInvalidID, err)
		return 0, false
	}
	return id, true
}

// failure names the responses for a resource operation.
type failure struct {
	notFound    error
	notFoundMsg string
	message     string
}

// respondError maps err to a response. Validation problems are 400 with
// their own message, the resource's not-found sentinel is 404 and the rest
// are a generic 500.
func respondError(w http.ResponseWriter, r *http.Request, err error, f failure) {
	if verr, ok := validation.As(err); ok {
		problem.Write(w, r, http.StatusBadRequest, verr.Message, err)
		return
	}
	if f.notFound != nil && errors.Is(err, f.notFound) {
		problem.Write(w, r, http.StatusNotFound, f.notFoundMsg, err)
		return
	}
	problem.Write(w, r, http.StatusInternalServerError, f.message, err)
}
