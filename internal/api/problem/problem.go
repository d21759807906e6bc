// Package problem writes API error responses. Every error body is a single
// {"message": "..."} object; the underlying cause goes to the log only.
package problem

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Body is the error response payload.
type Body struct {
	Message string `json:"message"`
}

// Write logs err against the request logger and answers with status and
// message. Server errors log at error level, client errors at warn.
func Write(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if r != nil {
		logger := zerolog.Ctx(r.Context())
		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = logger.Error()
		case status >= http.StatusBadRequest:
			event = logger.Warn()
		}
		if event != nil {
			event.
				Err(err).
				Int("status", status).
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Msg(message)
		}
	}

	WriteMessage(w, status, message)
}

// WriteMessage writes the JSON body without logging.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	payload, err := json.Marshal(Body{Message: message})
	if err != nil {
		payload = []byte(`{"message":"Internal Server Error"}`)
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(payload, '\n'))
}
