// Package report answers series and summary queries against the loaded
// catalog and records how often and how long each computation runs.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/winter-stats-service/internal/domain"
	"github.com/couchcryptid/winter-stats-service/internal/observability"
)

// ErrUnknownMetric is returned when a query names a metric the catalog does
// not define.
var ErrUnknownMetric = errors.New("unknown metric")

// SeriesQuery selects one aligned series. A zero Month means the whole
// window. Window only matters when Smooth is set; zero uses the service
// default.
type SeriesQuery struct {
	Metric string
	Month  domain.MonthFilter
	Smooth bool
	Window int
	Labels domain.LabelFunc
}

// Service computes chart series and summary rows from an immutable catalog.
// It holds no mutable state of its own and is safe for concurrent use.
type Service struct {
	catalog       *domain.Catalog
	clock         clockwork.Clock
	logger        *slog.Logger
	metrics       *observability.Metrics
	defaultWindow int
}

// New creates a Service over catalog. clock times each computation and
// defaults to the real clock when nil. defaultWindow is the smoothing width
// used when a query does not set one.
func New(catalog *domain.Catalog, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics, defaultWindow int) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if defaultWindow <= 0 {
		defaultWindow = domain.DefaultSmoothingWindow
	}
	return &Service{
		catalog:       catalog,
		clock:         clock,
		logger:        logger,
		metrics:       metrics,
		defaultWindow: defaultWindow,
	}
}

// Catalog returns the catalog the service reads from.
func (s *Service) Catalog() *domain.Catalog {
	return s.catalog
}

// Metric resolves a metric key, wrapping ErrUnknownMetric when absent.
func (s *Service) Metric(key string) (domain.MetricDefinition, error) {
	m, ok := s.catalog.Metric(key)
	if !ok {
		return domain.MetricDefinition{}, fmt.Errorf("%w: %q", ErrUnknownMetric, key)
	}
	return m, nil
}

// Series aligns every winter on day offset for the query's metric and
// month, then optionally smooths the result.
func (s *Service) Series(q SeriesQuery) (domain.AlignedSeries, error) {
	start := s.clock.Now()

	m, err := s.Metric(q.Metric)
	if err != nil {
		return domain.AlignedSeries{}, err
	}
	month := q.Month
	if month == "" {
		month = domain.MonthAll
	}

	series := domain.Align(s.catalog.Winters, m, month, q.Labels)
	if q.Smooth {
		window := q.Window
		if window <= 0 {
			window = s.defaultWindow
		}
		series = domain.Smooth(series, window)
	}

	s.metrics.SeriesComputed.WithLabelValues(m.Key, string(month), strconv.FormatBool(q.Smooth)).Inc()
	s.metrics.ComputeDuration.WithLabelValues("series").Observe(s.clock.Since(start).Seconds())
	s.logger.Debug("series computed",
		"metric", m.Key,
		"month", month,
		"smoothed", series.Smoothed,
		"window", series.Window,
		"points", len(series.Points),
	)
	return series, nil
}

// Summary returns the December, January and overall means for every
// (winter, metric) pair, winter-major.
func (s *Service) Summary() []domain.SummaryRow {
	start := s.clock.Now()
	rows := domain.Summarize(s.catalog.Winters, s.catalog.Metrics)

	s.metrics.SummaryComputed.Inc()
	s.metrics.ComputeDuration.WithLabelValues("summary").Observe(s.clock.Since(start).Seconds())
	s.logger.Debug("summary computed", "rows", len(rows))
	return rows
}

// CheckReadiness returns nil once the catalog holds at least one winter and
// one metric.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.catalog == nil {
		return errors.New("catalog not loaded")
	}
	if len(s.catalog.Winters) == 0 {
		return errors.New("catalog has no winters")
	}
	if len(s.catalog.Metrics) == 0 {
		return errors.New("catalog has no metrics")
	}
	return nil
}
