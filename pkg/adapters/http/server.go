package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/nocap-placify/placify/internal/logging"
	"github.com/nocap-placify/placify/internal/presentation/graph"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/ports"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o openapi.gen.go openapi.yaml

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Server exposes a ports.WizardService over HTTP by implementing the
// generated ServerInterface.
type Server struct {
	Service ports.WizardService
	Streams *StreamManager

	logger   *slog.Logger
	metrics  http.Handler
	checks   map[string]HealthCheck
	version  string
	unsubscr func()
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsHandler mounts a Prometheus handler at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithHealthCheck adds a named dependency check to /health.
func WithHealthCheck(name string, check HealthCheck) Option {
	return func(s *Server) {
		s.checks[name] = check
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// NewServer creates a server for svc. If svc is ports.Observable, every
// session change is pushed to SSE subscribers as a rendered view.
func NewServer(svc ports.WizardService, opts ...Option) *Server {
	s := &Server{
		Service:  svc,
		logger:   logging.NewNop(),
		checks:   make(map[string]HealthCheck),
		version:  "dev",
		unsubscr: func() {},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)

	if obs, ok := svc.(ports.Observable); ok {
		s.unsubscr = obs.Subscribe(s.broadcast)
	}
	return s
}

// NewHandler is a shorthand for NewServer(svc, opts...).Handler().
func NewHandler(svc ports.WizardService, opts ...Option) http.Handler {
	return NewServer(svc, opts...).Handler()
}

// Close stops forwarding session changes to SSE subscribers.
func (s *Server) Close() {
	s.unsubscr()
}

// Handler returns the router wrapped in CORS middleware.
func (s *Server) Handler() http.Handler {
	return enableCORS(s.Router())
}

// Router serves the documentation routes and mounts the generated API
// routes on the same chi router.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			s.logger.Error("Failed to load OpenAPI spec", "err", err)
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})

	HandlerFromMux(s, r)
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Placify API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, sess *domain.Session, cause error) {
	v, err := s.Service.Render(sess)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := SessionResponse{Session: *sess, View: v}
	if cause != nil {
		resp.Error = ptr(cause.Error())
		resp.Invalid = invalidFields(cause)
	}
	writeJSON(w, s.logger, status, resp)
}

// ListWizards handles GET /wizards.
func (s *Server) ListWizards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, s.Service.Wizards())
}

// GetWizard handles GET /wizards/{wizard}.
func (s *Server) GetWizard(w http.ResponseWriter, r *http.Request, wizard string) {
	def, err := s.Service.Wizard(wizard)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, def)
}

// GetWizardGraph handles GET /wizards/{wizard}/graph.
func (s *Server) GetWizardGraph(w http.ResponseWriter, r *http.Request, wizard string, params GetWizardGraphParams) {
	def, err := s.Service.Wizard(wizard)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var overlay *graph.Overlay
	if params.Session != nil && *params.Session != "" {
		id := *params.Session
		sess, err := s.Service.Session(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if sess.WizardID != def.ID {
			s.writeError(w, r, fmt.Errorf("%w: session %s runs %s", domain.ErrSessionNotFound, id, sess.WizardID))
			return
		}
		overlay = &graph.Overlay{CurrentStep: sess.CurrentStep, Submitted: sess.Submitted}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(def, overlay)))
}

// StartSession handles POST /wizards/{wizard}/sessions.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request, wizard string) {
	sess, err := s.Service.Start(r.Context(), wizard)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusCreated, sess, nil)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := s.Service.Session(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, sess, nil)
}

// AbandonSession handles DELETE /sessions/{id}.
func (s *Server) AbandonSession(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.Service.Abandon(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetFields handles PUT /sessions/{id}/fields.
func (s *Server) SetFields(w http.ResponseWriter, r *http.Request, id string) {
	var body SetFieldsJSONRequestBody
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("SetFields: Invalid request body", "err", err)
		writeJSON(w, s.logger, http.StatusBadRequest, Error{Error: "invalid request body"})
		return
	}
	if len(body.Values) == 0 {
		writeJSON(w, s.logger, http.StatusBadRequest, Error{Error: "values must not be empty"})
		return
	}

	sess, err := s.Service.SetValues(r.Context(), id, body.Values)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, sess, nil)
}

// Advance handles POST /sessions/{id}/advance.
// A refused step answers 422 with the session and its error flags.
func (s *Server) Advance(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := s.Service.Advance(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrStepInvalid) && sess != nil {
			s.respond(w, r, http.StatusUnprocessableEntity, sess, err)
			return
		}
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, sess, nil)
}

// Retreat handles POST /sessions/{id}/retreat.
func (s *Server) Retreat(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := s.Service.Retreat(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, sess, nil)
}

// Submit handles POST /sessions/{id}/submit.
// A failed submission answers 502 with the session and its failure notice.
func (s *Server) Submit(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := s.Service.Submit(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if sess.Failure != nil {
		s.logger.Warn("submission failed", "session_id", sess.ID, "reason", sess.Failure.Reason)
		s.respond(w, r, http.StatusBadGateway, sess, errors.New(sess.Failure.Message))
		return
	}
	s.respond(w, r, http.StatusOK, sess, nil)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.checks[name](r.Context()); err != nil {
			s.logger.Error("health check failed", "check", name, "err", err)
			writeJSON(w, s.logger, http.StatusServiceUnavailable, Status{
				Status: "unavailable",
				Error:  ptr(fmt.Sprintf("%s: %v", name, err)),
			})
			return
		}
	}
	writeJSON(w, s.logger, http.StatusOK, Status{Status: "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"app":         "placify-http",
		"version":     s.version,
		"api_version": apiVersion,
	})
}

// GetMetrics handles GET /metrics when a metrics handler is configured.
func (s *Server) GetMetrics(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil {
		writeJSON(w, s.logger, http.StatusNotFound, Error{Error: "metrics are disabled"})
		return
	}
	s.metrics.ServeHTTP(w, r)
}

// broadcast renders a changed session for its SSE subscribers.
func (s *Server) broadcast(sess *domain.Session) {
	if s.Streams.Count(sess.ID) == 0 {
		return
	}
	v, err := s.Service.Render(sess)
	if err != nil {
		s.logger.Warn("SSE: render failed", "session_id", sess.ID, "err", err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.Streams.Broadcast(sess.ID, string(data))
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE).
// The current view is sent first, then one "view" event per change.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, id string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	sess, err := s.Service.Session(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	current, err := s.Service.Render(sess)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	initial, err := json.Marshal(current)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	s.logger.Info("SSE: Subscribing to Session Updates", "session_id", id)
	fmt.Fprintf(w, "event: view\ndata: %s\n\n", initial)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: view\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
