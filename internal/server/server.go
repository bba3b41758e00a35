// Package server exposes upload sessions and their reports over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sells-group/transport-report/internal/ingest"
	"github.com/sells-group/transport-report/internal/session"
)

// Options configures the HTTP API.
type Options struct {
	// MaxUploadBytes caps the request body of an upload. Default: 32 MiB.
	MaxUploadBytes int64

	// RatePerSec and Burst configure the global request limiter. A
	// non-positive rate disables limiting.
	RatePerSec float64
	Burst      int

	AllowedOrigins []string

	// TopN is the default by-jobs route ranking length.
	TopN int
}

// Server holds the dependencies of the API handlers.
type Server struct {
	store   *session.Store
	reader  *ingest.Reader
	opts    Options
	metrics *metrics
}

// New creates a Server backed by store. Uploads are parsed with reader.
func New(store *session.Store, reader *ingest.Reader, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if reader == nil {
		reader = ingest.NewReader(nil, ingest.LoadOptions{})
	}
	return &Server{
		store:   store,
		reader:  reader,
		opts:    opts,
		metrics: newMetrics(func() float64 { return float64(store.Len()) }),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))
	if s.opts.RatePerSec > 0 {
		r.Use(newRateLimiter(s.opts.RatePerSec, s.opts.Burst).Handler)
	}

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/report", s.handleReport)
			r.Get("/records", s.handleRecords)
			r.Get("/export", s.handleExport)
		})
	})

	return r
}
