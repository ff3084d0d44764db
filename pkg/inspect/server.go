// Package inspect serves a read-only view of a route manifest over HTTP.
package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/abdul-hamid-achik/flatroutes/pkg/match"
	"github.com/abdul-hamid-achik/flatroutes/pkg/routes"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the inspection HTTP server.
type Server struct {
	current atomic.Pointer[snapshot]
	router  chi.Router
	logger  *slog.Logger
	title   string
}

// snapshot is one build as served: a manifest, its matcher and when it
// was swapped in. Handlers load it once per request.
type snapshot struct {
	manifest *routes.Manifest
	matcher  *match.Matcher
	updated  time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTitle sets the HTML page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// New creates a Server for m.
func New(m *routes.Manifest, opts ...Option) *Server {
	s := &Server{
		logger: slog.Default(),
		title:  "Routes",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.SetManifest(m)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.logger, "/healthz"))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/manifest.json", s.handleManifest)
	r.Get("/routes/{id}", s.handleRoute)
	r.Get("/match", s.handleMatch)
	r.Get("/healthz", s.handleHealth)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})

	s.router = r
	return s
}

// SetManifest swaps the served manifest. Safe for concurrent use.
func (s *Server) SetManifest(m *routes.Manifest) {
	if m == nil {
		m, _ = routes.BuildManifest(nil)
	}
	s.current.Store(&snapshot{
		manifest: m,
		matcher:  match.New(m),
		updated:  time.Now(),
	})
}

// Manifest returns the manifest currently served.
func (s *Server) Manifest() *routes.Manifest {
	return s.current.Load().manifest
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type errorResponse struct {
	Error string `json:"error"`
	ID    string `json:"id,omitempty"`
	Path  string `json:"path,omitempty"`
}

// RouteDetail is the body of GET /routes/{id}.
type RouteDetail struct {
	Route    routes.Route   `json:"route"`
	FullPath string         `json:"fullPath"`
	Children []routes.Route `json:"children"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Routes    int    `json:"routes"`
	UpdatedAt string `json:"updatedAt"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := Page(s.title, s.Manifest()).Render(r.Context(), w); err != nil {
		s.logger.Error("render failed", "error", err)
	}
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Manifest())
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}

	m := s.Manifest()
	route, ok := m.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found", ID: id})
		return
	}

	children := m.Children(id)
	if children == nil {
		children = []routes.Route{}
	}
	writeJSON(w, http.StatusOK, RouteDetail{
		Route:    route,
		FullPath: m.FullPath(id),
		Children: children,
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing path query parameter"})
		return
	}

	res, ok := s.current.Load().matcher.Match(path)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no route matches", Path: path})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.current.Load()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Routes:    snap.manifest.Len(),
		UpdatedAt: snap.updated.UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
