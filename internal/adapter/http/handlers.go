package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/winter-stats-service/internal/adapter/chart"
	"github.com/couchcryptid/winter-stats-service/internal/adapter/xlsx"
	"github.com/couchcryptid/winter-stats-service/internal/domain"
	"github.com/couchcryptid/winter-stats-service/internal/i18n"
	"github.com/couchcryptid/winter-stats-service/internal/report"
)

type winterInfo struct {
	Label     string `json:"label"`
	StartYear int    `json:"start_year"`
	Records   int    `json:"records"`
}

type wintersResponse struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Location    domain.Location `json:"location"`
	Winters     []winterInfo    `json:"winters"`
}

type metricInfo struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Unit  string `json:"unit"`
}

type metricsResponse struct {
	Lang    string       `json:"lang"`
	Metrics []metricInfo `json:"metrics"`
}

type dayLabel struct {
	Offset int    `json:"offset"`
	Date   string `json:"date"`
	Label  string `json:"label"`
}

type labelsResponse struct {
	Lang   string             `json:"lang"`
	Month  domain.MonthFilter `json:"month"`
	Labels []dayLabel         `json:"labels"`
}

type seriesResponse struct {
	GeneratedAt time.Time `json:"generated_at"`
	Lang        string    `json:"lang"`
	Title       string    `json:"title"`
	Unit        string    `json:"unit"`
	domain.AlignedSeries
}

type summaryRow struct {
	Title string `json:"title"`
	Unit  string `json:"unit"`
	domain.SummaryRow
}

type summaryResponse struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Lang        string       `json:"lang"`
	Columns     i18n.Columns `json:"columns"`
	Rows        []summaryRow `json:"rows"`
}

func (s *Server) handleWinters(w http.ResponseWriter, r *http.Request) {
	catalog := s.reports.Catalog()
	winters := make([]winterInfo, len(catalog.Winters))
	for i, wd := range catalog.Winters {
		winters[i] = winterInfo{Label: wd.Label, StartYear: wd.StartYear, Records: len(wd.Records)}
	}
	writeJSON(w, r, http.StatusOK, wintersResponse{
		GeneratedAt: s.clock.Now().UTC(),
		Location:    catalog.Location,
		Winters:     winters,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	var p langParams
	p.Lang = r.URL.Query().Get("lang")
	if err := s.validate.Struct(p); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	locale := s.resolveLocale(r, p.Lang)

	metrics := s.reports.Catalog().Metrics
	out := make([]metricInfo, len(metrics))
	for i, m := range metrics {
		out[i] = metricInfo{Key: m.Key, Title: locale.MetricTitle(m.Key), Unit: locale.Unit(m.Unit)}
	}
	writeJSON(w, r, http.StatusOK, metricsResponse{Lang: locale.Key, Metrics: out})
}

func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := labelParams{Month: q.Get("month"), Lang: q.Get("lang")}
	if err := s.validate.Struct(p); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	locale := s.resolveLocale(r, p.Lang)
	month := domain.ParseMonthFilter(p.Month)

	// Dates are shown against the most recent winter.
	startYear := 0
	if winters := s.reports.Catalog().Winters; len(winters) > 0 {
		startYear = winters[len(winters)-1].StartYear
	}

	lo, hi := month.Range()
	labels := make([]dayLabel, 0, hi-lo)
	for offset := lo; offset < hi; offset++ {
		labels = append(labels, dayLabel{
			Offset: offset,
			Date:   domain.OffsetDate(offset, startYear).Format(time.DateOnly),
			Label:  locale.DayLabel(offset),
		})
	}
	writeJSON(w, r, http.StatusOK, labelsResponse{Lang: locale.Key, Month: month, Labels: labels})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	p, err := parseSeriesParams(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(p); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	locale := s.resolveLocale(r, p.Lang)

	series, metric, ok := s.series(w, r, p, locale.Labels())
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, seriesResponse{
		GeneratedAt:   s.clock.Now().UTC(),
		Lang:          locale.Key,
		Title:         locale.MetricTitle(metric.Key),
		Unit:          locale.Unit(metric.Unit),
		AlignedSeries: series,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var p langParams
	p.Lang = r.URL.Query().Get("lang")
	if err := s.validate.Struct(p); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	locale := s.resolveLocale(r, p.Lang)
	catalog := s.reports.Catalog()

	rows := s.reports.Summary()
	out := make([]summaryRow, len(rows))
	for i, row := range rows {
		unit := ""
		if m, ok := catalog.Metric(row.Metric); ok {
			unit = locale.Unit(m.Unit)
		}
		out[i] = summaryRow{Title: locale.MetricTitle(row.Metric), Unit: unit, SummaryRow: row}
	}
	writeJSON(w, r, http.StatusOK, summaryResponse{
		GeneratedAt: s.clock.Now().UTC(),
		Lang:        locale.Key,
		Columns:     locale.Columns(),
		Rows:        out,
	})
}

func (s *Server) handleSummaryXLSX(w http.ResponseWriter, r *http.Request) {
	var p langParams
	p.Lang = r.URL.Query().Get("lang")
	if err := s.validate.Struct(p); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	locale := s.resolveLocale(r, p.Lang)

	var buf bytes.Buffer
	if err := xlsx.WriteSummary(&buf, s.reports.Summary(), s.reports.Catalog(), locale); err != nil {
		s.logger.Error("summary export failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	w.Header().Set("Content-Type", xlsx.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="winter-summary-%s.xlsx"`, locale.Key))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	p, err := parseChartParams(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(p); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	locale := s.resolveLocale(r, p.Lang)

	series, metric, ok := s.series(w, r, p.seriesParams, locale.Labels())
	if !ok {
		return
	}

	view := chart.View{
		Format: chart.FormatPNG,
		Width:  s.chartWidth,
		Height: s.chartHeight,
		Locale: locale,
	}
	if p.Format != "" {
		view.Format = chart.Format(p.Format)
	}
	if p.Width > 0 {
		view.Width = p.Width
	}
	if p.Height > 0 {
		view.Height = p.Height
	}
	if len(p.Hide) > 0 {
		view.Hidden = make(map[string]bool, len(p.Hide))
		for _, label := range p.Hide {
			view.Hidden[label] = true
		}
	}

	data, err := s.charts.Render(series, metric, view)
	switch {
	case errors.Is(err, chart.ErrNoData):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, r, http.StatusInternalServerError, "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", view.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	// The locale may come from Accept-Language rather than the URL.
	w.Header().Set("Vary", "Accept-Language")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck // client went away
}

// series resolves the metric route parameter and computes the series,
// writing the error response itself when it cannot.
func (s *Server) series(w http.ResponseWriter, r *http.Request, p seriesParams, labels domain.LabelFunc) (domain.AlignedSeries, domain.MetricDefinition, bool) {
	key := chi.URLParam(r, "metric")
	metric, err := s.reports.Metric(key)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return domain.AlignedSeries{}, domain.MetricDefinition{}, false
	}

	series, err := s.reports.Series(report.SeriesQuery{
		Metric: key,
		Month:  domain.ParseMonthFilter(p.Month),
		Smooth: p.Smooth,
		Window: p.Window,
		Labels: labels,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, report.ErrUnknownMetric) {
			status = http.StatusNotFound
		}
		writeError(w, r, status, err.Error())
		return domain.AlignedSeries{}, domain.MetricDefinition{}, false
	}
	return series, metric, true
}
