package problem

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func requestWithLogger(buf *bytes.Buffer) *http.Request {
	logger := zerolog.New(buf).With().Str("request_id", "req-1").Logger()
	req := httptest.NewRequest(http.MethodPost, "/api/register", nil)
	return req.WithContext(logger.WithContext(req.Context()))
}

func TestWrite_BodyCarriesMessageOnly(t *testing.T) {
	var logs bytes.Buffer
	res := httptest.NewRecorder()

	Write(res, requestWithLogger(&logs), http.StatusInternalServerError, "An error occurred during registration", errors.New("connection reset by peer"))

	require.Equal(t, http.StatusInternalServerError, res.Code)
	require.Equal(t, "application/json", res.Header().Get("Content-Type"))
	require.JSONEq(t, `{"message":"An error occurred during registration"}`, res.Body.String())
	require.NotContains(t, res.Body.String(), "connection reset")
}

func TestWrite_LogLevels(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "error"},
		{name: "unavailable", status: http.StatusServiceUnavailable, wantLevel: "error"},
		{name: "client error", status: http.StatusBadRequest, wantLevel: "warn"},
		{name: "not found", status: http.StatusNotFound, wantLevel: "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			Write(httptest.NewRecorder(), requestWithLogger(&logs), tt.status, "msg", errors.New("cause"))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
			require.Equal(t, tt.wantLevel, entry["level"])
			require.Equal(t, "req-1", entry["request_id"])
			require.Equal(t, "cause", entry["error"])
			require.EqualValues(t, tt.status, entry["status"])
		})
	}
}

func TestWrite_NoLoggerInContext(t *testing.T) {
	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/venues/1", nil)

	require.NotPanics(t, func() {
		Write(res, req, http.StatusNotFound, "Venue not found", nil)
	})
	require.JSONEq(t, `{"message":"Venue not found"}`, res.Body.String())
}
