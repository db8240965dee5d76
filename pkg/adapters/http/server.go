package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/config"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxDocumentSize bounds the request body of /convert and /inspect.
const MaxDocumentSize = 32 << 20

// Server serves the conversion API.
type Server struct {
	Converter *waypoint.Converter
	Store     ports.PathStore
	Gatherer  prometheus.Gatherer
	Logger    *slog.Logger

	spec *openapi3.T
}

// Option configures the Server.
type Option func(*Server)

// WithStore exposes the stored runs under /runs.
func WithStore(s ports.PathStore) Option {
	return func(srv *Server) {
		srv.Store = s
	}
}

// WithGatherer serves metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(srv *Server) {
		srv.Gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(srv *Server) {
		srv.Logger = l
	}
}

// NewHandler creates a new HTTP handler for the converter.
func NewHandler(conv *waypoint.Converter, opts ...Option) (http.Handler, error) {
	spec, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	s := &Server{
		Converter: conv,
		Gatherer:  prometheus.DefaultGatherer,
		Logger:    slog.Default(),
		spec:      spec,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.Health)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))

	r.Post("/convert", s.Convert)
	r.Post("/inspect", s.Inspect)
	r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.ListRuns)
		r.Get("/{runID}", s.ListPaths)
		r.Delete("/{runID}", s.DeleteRun)
		r.Get("/{runID}/paths/*", s.GetPath)
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
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
    <title>Waypoint API Documentation</title>
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

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Convert handles POST /convert. Query parameters override the settings of
// the converter for this request only.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	conv, err := s.converterFor(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	data, ok := s.readDocument(w, r)
	if !ok {
		return
	}

	res, err := conv.ConvertBytes(r.Context(), data)
	if err != nil {
		status := statusFor(err)
		if status >= 500 {
			s.Logger.Error("Convert failed", "error", err)
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Inspect handles POST /inspect.
func (s *Server) Inspect(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	res, err := s.Converter.Inspect(r.Context(), data)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ListRuns handles GET /runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	runs, err := s.Store.Runs(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// ListPaths handles GET /runs/{runID}.
func (s *Server) ListPaths(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	keys, err := s.Store.List(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, keys)
}

// GetPath handles GET /runs/{runID}/paths/{key}.
func (s *Server) GetPath(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	path, err := s.Store.Load(r.Context(), chi.URLParam(r, "runID"), chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, path)
}

// DeleteRun handles DELETE /runs/{runID}.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "runID")); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) converterFor(r *http.Request) (*waypoint.Converter, error) {
	q := r.URL.Query()
	if len(q) == 0 {
		return s.Converter, nil
	}
	overrides := make(map[string]any, len(q))
	for k := range q {
		overrides[k] = q.Get(k)
	}
	settings, err := config.FromMap(s.Converter.Settings(), overrides)
	if err != nil {
		return nil, err
	}
	return s.Converter.Derive(waypoint.WithSettings(settings))
}

func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDocumentSize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return nil, false
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("empty document"))
		return nil, false
	}
	return data, true
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, errors.New("path store disabled"))
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrInvalidFrameRate),
		errors.Is(err, config.ErrInvalidSettings):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRunNotFound),
		errors.Is(err, domain.ErrStoredPathNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("response encode failed", "error", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
