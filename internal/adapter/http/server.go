// Package http serves the chart, series and summary API over chi, next to
// the health, readiness and metrics endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/winter-stats-service/internal/adapter/chart"
	"github.com/couchcryptid/winter-stats-service/internal/i18n"
	"github.com/couchcryptid/winter-stats-service/internal/observability"
	"github.com/couchcryptid/winter-stats-service/internal/report"
)

// Options carries the collaborators and rendering defaults for a Server.
type Options struct {
	Reports *report.Service
	Charts  chart.Renderer
	Metrics *observability.Metrics
	Logger  *slog.Logger

	// Clock stamps generated_at on responses. Defaults to the real clock.
	Clock clockwork.Clock

	DefaultLocale i18n.Locale
	ChartWidth    int
	ChartHeight   int
}

// Server exposes the winter statistics API plus health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	metrics    *observability.Metrics
	validate   *validator.Validate
	clock      clockwork.Clock

	reports     *report.Service
	charts      chart.Renderer
	locale      i18n.Locale
	chartWidth  int
	chartHeight int
}

// NewServer creates an HTTP server listening on addr.
func NewServer(addr string, opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.DefaultLocale.Key == "" {
		opts.DefaultLocale = i18n.English
	}

	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		validate:    newValidator(),
		clock:       opts.Clock,
		reports:     opts.Reports,
		charts:      opts.Charts,
		locale:      opts.DefaultLocale,
		chartWidth:  opts.ChartWidth,
		chartHeight: opts.ChartHeight,
	}

	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(opts.Reports))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/winters", s.handleWinters)
		r.Get("/metrics", s.handleMetrics)
		r.Get("/labels", s.handleLabels)
		r.Get("/series/{metric}", s.handleSeries)
		r.Get("/summary", s.handleSummary)
		r.Get("/summary.xlsx", s.handleSummaryXLSX)
	})
	r.Get("/charts/{metric}", s.handleChart)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// resolveLocale prefers an explicit lang parameter, then Accept-Language,
// then the configured default.
func (s *Server) resolveLocale(r *http.Request, lang string) i18n.Locale {
	return i18n.Negotiate(lang, r.Header.Get("Accept-Language"), s.locale)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}
