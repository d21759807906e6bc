package api

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"

	"github.com/aqtareen/Taqreeb/internal/api/problem"
	"sigs.k8s.io/yaml"
)

//go:embed openapi.yaml
var openAPIYAML []byte

type openAPIDoc struct {
	body []byte
	etag string
}

var loadOpenAPI = sync.OnceValues(func() (openAPIDoc, error) {
	body, err := yaml.YAMLToJSON(openAPIYAML)
	if err != nil {
		return openAPIDoc{}, fmt.Errorf("convert openapi.yaml: %w", err)
	}
	sum := sha256.Sum256(body)
	return openAPIDoc{body: body, etag: `"` + hex.EncodeToString(sum[:8]) + `"`}, nil
})

// OpenAPIHandler serves the embedded API description as JSON with an ETag,
// answering 304 when the client already holds the current document.
func OpenAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := loadOpenAPI()
		if err != nil {
			problem.Write(w, r, http.StatusInternalServerError, "OpenAPI document unavailable", err)
			return
		}

		w.Header().Set("ETag", doc.etag)
		if r.Header.Get("If-None-Match") == doc.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc.body)
	}
}
