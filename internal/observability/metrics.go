package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "winter_stats"

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	SeriesComputed  *prometheus.CounterVec   // labels: metric, month, smoothed={true,false}
	SummaryComputed prometheus.Counter
	ComputeDuration *prometheus.HistogramVec // labels: operation={series,summary}

	// Chart rendering metrics.
	ChartRenders *prometheus.CounterVec // labels: format={png,svg}, outcome={success,error,empty}
	ChartCache   *prometheus.CounterVec // labels: result={hit,miss}

	// Fixture metrics, set once at startup.
	DatasetsLoaded prometheus.Gauge
	RecordsLoaded  *prometheus.GaugeVec // labels: winter

	HTTPRequests *prometheus.CounterVec // labels: route, status
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SeriesComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "series_computed_total",
			Help:      "Aligned series computed, by metric, month filter and smoothing.",
		}, []string{"metric", "month", "smoothed"}),
		SummaryComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_computed_total",
			Help:      "Summary tables computed.",
		}),
		ComputeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compute_duration_seconds",
			Help:      "Duration of series and summary computations.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"operation"}),
		ChartRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_renders_total",
			Help:      "Chart renders by output format and outcome.",
		}, []string{"format", "outcome"}),
		ChartCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_cache_total",
			Help:      "Rendered chart cache lookups by result.",
		}, []string{"result"}),
		DatasetsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "datasets_loaded",
			Help:      "Number of winter datasets loaded from fixtures.",
		}),
		RecordsLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      "Daily records loaded per winter.",
		}, []string{"winter"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
	}

	prometheus.MustRegister(
		m.SeriesComputed,
		m.SummaryComputed,
		m.ComputeDuration,
		m.ChartRenders,
		m.ChartCache,
		m.DatasetsLoaded,
		m.RecordsLoaded,
		m.HTTPRequests,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SeriesComputed:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "series_computed_total"}, []string{"metric", "month", "smoothed"}),
		SummaryComputed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "summary_computed_total"}),
		ComputeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "compute_duration_seconds"}, []string{"operation"}),
		ChartRenders:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "chart_renders_total"}, []string{"format", "outcome"}),
		ChartCache:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "chart_cache_total"}, []string{"result"}),
		DatasetsLoaded:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "datasets_loaded"}),
		RecordsLoaded:   prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: "records_loaded"}, []string{"winter"}),
		HTTPRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total"}, []string{"route", "status"}),
	}
}
