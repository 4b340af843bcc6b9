package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/praaatap/gdit.site/pkg/domain"
)

//go:embed openapi.yaml
var rawSpec []byte

// Spec returns the embedded OpenAPI document.
func Spec() []byte {
	return rawSpec
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// Session is the wire form of a session snapshot.
type Session struct {
	ID         string              `json:"id"`
	Lines      []domain.OutputLine `json:"lines"`
	Busy       bool                `json:"busy"`
	Generation uint64              `json:"generation"`
	Version    uint64              `json:"version"`
}

// SubmitRequest is the body of POST /sessions/{id}/commands.
type SubmitRequest struct {
	Input string `json:"input"`
}

// CatalogEntry summarises one recognised command.
type CatalogEntry struct {
	Command     string `json:"command"`
	Description string `json:"description"`
	Lines       int    `json:"lines"`
}

// Catalog is the body of GET /catalog.
type Catalog struct {
	Commands    []CatalogEntry `json:"commands"`
	Suggestions []string       `json:"suggestions"`
}

// Error is the body of every 4xx/5xx JSON response.
type Error struct {
	Error string `json:"error"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /healthz)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// (GET /catalog)
	GetCatalog(w http.ResponseWriter, r *http.Request)
	// (POST /sessions)
	CreateSession(w http.ResponseWriter, r *http.Request)
	// (GET /sessions/{id})
	GetSession(w http.ResponseWriter, r *http.Request, id string)
	// (DELETE /sessions/{id})
	DeleteSession(w http.ResponseWriter, r *http.Request, id string)
	// (POST /sessions/{id}/commands)
	SubmitCommand(w http.ResponseWriter, r *http.Request, id string)
	// (POST /sessions/{id}/reset)
	ResetSession(w http.ResponseWriter, r *http.Request, id string)
	// (GET /sessions/{id}/stream)
	StreamSession(w http.ResponseWriter, r *http.Request, id string)
}

// withSessionID binds the {id} path parameter before calling fn.
func withSessionID(fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id string
		err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter id: %w", err))
			return
		}
		fn(w, r, id)
	}
}

// MiddlewareFunc wraps a matched route's handler.
type MiddlewareFunc func(http.Handler) http.Handler

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseRouter chi.Router
	// Middlewares run after routing, so chi's route pattern is available to them.
	Middlewares []MiddlewareFunc
}

// HandlerFromMux registers the API routes of si on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{BaseRouter: r})
}

// HandlerWithOptions registers the API routes of si with the given options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	wrap := func(h http.HandlerFunc) http.Handler {
		var handler http.Handler = h
		for i := len(options.Middlewares) - 1; i >= 0; i-- {
			handler = options.Middlewares[i](handler)
		}
		return handler
	}

	r.Method(http.MethodGet, "/healthz", wrap(si.GetHealth))
	r.Method(http.MethodGet, "/catalog", wrap(si.GetCatalog))
	r.Method(http.MethodPost, "/sessions", wrap(si.CreateSession))
	r.Method(http.MethodGet, "/sessions/{id}", wrap(withSessionID(si.GetSession)))
	r.Method(http.MethodDelete, "/sessions/{id}", wrap(withSessionID(si.DeleteSession)))
	r.Method(http.MethodPost, "/sessions/{id}/commands", wrap(withSessionID(si.SubmitCommand)))
	r.Method(http.MethodPost, "/sessions/{id}/reset", wrap(withSessionID(si.ResetSession)))
	r.Method(http.MethodGet, "/sessions/{id}/stream", wrap(withSessionID(si.StreamSession)))
	return r
}
