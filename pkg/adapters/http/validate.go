package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

// maxBodySize bounds request bodies before schema validation.
const maxBodySize = 64 << 10

// validateBodies checks JSON request bodies against the operation's schema in doc.
// Routes are resolved through chi's route pattern, which uses the same {param}
// templating as the document.
func validateBodies(doc *openapi3.T) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			schema := requestSchema(doc, r)
			if schema == nil {
				next.ServeHTTP(w, r)
				return
			}

			data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
				return
			}
			if len(data) > maxBodySize {
				writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("body exceeds %d bytes", maxBodySize))
				return
			}

			var value any
			if err := json.Unmarshal(data, &value); err != nil {
				writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err))
				return
			}
			if err := schema.VisitJSON(value); err != nil {
				writeError(w, http.StatusBadRequest, fmt.Errorf("request body does not match schema: %w", err))
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(data))
			next.ServeHTTP(w, r)
		})
	}
}

// requestSchema finds the JSON body schema for the matched route, if any.
func requestSchema(doc *openapi3.T, r *http.Request) *openapi3.Schema {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	pattern := rctx.RoutePattern()
	if pattern == "" {
		return nil
	}
	item := doc.Paths.Find(pattern)
	if item == nil {
		return nil
	}
	op := item.GetOperation(r.Method)
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}
