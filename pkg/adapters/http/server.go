package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/praaatap/gdit.site/pkg/catalog"
	"github.com/praaatap/gdit.site/pkg/domain"
	"github.com/praaatap/gdit.site/pkg/observability"
	"github.com/praaatap/gdit.site/pkg/playback"
	"github.com/praaatap/gdit.site/pkg/runner"
	"github.com/praaatap/gdit.site/pkg/session"
	"github.com/praaatap/gdit.site/pkg/transcript"
)

// Server implements ServerInterface over a session registry.
type Server struct {
	Sessions *session.Manager
	Catalog  *catalog.Catalog
	Metrics  *observability.Metrics
	Logger   *slog.Logger
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the handler built by NewHandler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics exposes m on GET /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// NewHandler creates the HTTP handler of the terminal widget backend.
// It fails if the embedded OpenAPI document does not validate.
func NewHandler(ctx context.Context, sessions *session.Manager, cat *catalog.Catalog, opts ...Option) (http.Handler, error) {
	doc, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}

	server := &Server{
		Sessions: sessions,
		Catalog:  cat,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(Spec())
	})
	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics.Handler())
	}

	handler := HandlerWithOptions(server, ChiServerOptions{
		BaseRouter:  r,
		Middlewares: []MiddlewareFunc{validateBodies(doc)},
	})
	return enableCORS(handler), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, Error{Error: err.Error()})
}

func sessionBody(id string, snap playback.Snapshot) Session {
	lines := snap.Lines
	if lines == nil {
		lines = []domain.OutputLine{}
	}
	return Session{ID: id, Lines: lines, Busy: snap.Busy, Generation: snap.Generation, Version: snap.Version}
}

// lookup resolves a session or writes 404.
func (s *Server) lookup(w http.ResponseWriter, id string) (*playback.Session, bool) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		writeLookupError(w, err)
		return nil, false
	}
	return sess, true
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, err)
	} else {
		writeError(w, http.StatusInternalServerError, err)
	}
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.Sessions.Len()})
}

// GetCatalog handles GET /catalog.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	resp := Catalog{Suggestions: s.Catalog.Suggestions()}
	for _, e := range s.Catalog.Entries() {
		resp.Commands = append(resp.Commands, CatalogEntry{Command: e.Command, Description: e.Description, Lines: len(e.Lines)})
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	info, sess, err := s.Sessions.Create()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrTooManySessions) {
			status = http.StatusServiceUnavailable
		}
		s.Logger.Warn("CreateSession failed", "err", err)
		writeError(w, status, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+info.ID)
	writeJSON(w, http.StatusCreated, sessionBody(info.ID, sess.Snapshot()))
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, id string) {
	sess, ok := s.lookup(w, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionBody(id, sess.Snapshot()))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.Sessions.Delete(id); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitCommand handles POST /sessions/{id}/commands.
func (s *Server) SubmitCommand(w http.ResponseWriter, r *http.Request, id string) {
	sess, ok := s.lookup(w, id)
	if !ok {
		return
	}

	var body SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	input, err := runner.SanitizeInput(body.Input)
	if err != nil {
		s.Logger.Warn("SubmitCommand: input rejected", "err", err, "size", len(body.Input))
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(input) == "" {
		writeError(w, http.StatusBadRequest, domain.ErrEmptyInput)
		return
	}

	if !sess.Submit(input) {
		writeError(w, http.StatusConflict, domain.ErrBusy)
		return
	}
	writeJSON(w, http.StatusAccepted, sessionBody(id, sess.Snapshot()))
}

// ResetSession handles POST /sessions/{id}/reset.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request, id string) {
	sess, ok := s.lookup(w, id)
	if !ok {
		return
	}
	sess.Reset()
	writeJSON(w, http.StatusOK, sessionBody(id, sess.Snapshot()))
}

// StreamSession handles GET /sessions/{id}/stream (SSE).
// The first event is a snapshot; transcript events follow as "appended" or "replaced".
// A connected stream keeps the session alive and ends when the session is deleted.
func (s *Server) StreamSession(w http.ResponseWriter, r *http.Request, id string) {
	sess, gone, release, err := s.Sessions.Attach(id)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	defer release()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	q := transcript.NewQueue()
	remove := sess.Listen(q.Push)
	defer remove()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	writeEvent(w, "snapshot", sessionBody(id, sess.Snapshot()))
	flusher.Flush()
	s.Logger.Debug("SSE client connected", "session_id", id)

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected", "session_id", id)
			return
		case <-gone:
			s.Logger.Debug("SSE stream closed, session deleted", "session_id", id)
			return
		case <-q.Ready():
			for _, ev := range q.Drain() {
				writeEvent(w, string(ev.Type), ev)
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w io.Writer, name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
}
