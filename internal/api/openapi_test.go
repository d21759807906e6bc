package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAPIHandler(t *testing.T) {
	res := httptest.NewRecorder()
	OpenAPIHandler().ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "application/json", res.Header().Get("Content-Type"))

	var doc struct {
		OpenAPI string                     `json:"openapi"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &doc))
	require.Equal(t, "3.0.3", doc.OpenAPI)
	for _, path := range []string{
		"/api/register",
		"/api/login",
		"/api/events",
		"/api/events/{id}",
		"/api/events/by-name/{name}",
		"/api/venues/{id}",
		"/api/vendors/{vendorId}/items",
		"/api/vendors/{vendorId}/items/{itemId}",
		"/api/teams",
		"/api/tasks/{id}",
		"/version",
	} {
		require.Contains(t, doc.Paths, path)
	}
}

func TestOpenAPIHandlerConcurrentRequests(t *testing.T) {
	handler := OpenAPIHandler()

	var wg sync.WaitGroup
	bodies := make([]string, 10)
	for i := range bodies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res := httptest.NewRecorder()
			handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))
			bodies[i] = res.Body.String()
		}(i)
	}
	wg.Wait()

	for _, body := range bodies[1:] {
		require.Equal(t, bodies[0], body)
	}
}

func TestOpenAPIHandlerETag(t *testing.T) {
	handler := OpenAPIHandler()

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil)
	req.Header.Set("If-None-Match", etag)
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)

	require.Equal(t, http.StatusNotModified, second.Code)
	require.Empty(t, second.Body.String())
}
