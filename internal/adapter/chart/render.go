// Package chart draws aligned winter series as PNG or SVG line charts.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/winter-stats-service/internal/domain"
	"github.com/couchcryptid/winter-stats-service/internal/i18n"
	"github.com/couchcryptid/winter-stats-service/internal/observability"
)

// ErrNoData is returned when every line of a chart is hidden or has no values.
var ErrNoData = errors.New("no data to plot")

// Format is the output image encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// View is the presentation state for one chart. Hidden is keyed by winter
// label; hidden winters are left out of the plot but keep their color.
type View struct {
	Format Format
	Width  int
	Height int
	Hidden map[string]bool
	Locale i18n.Locale
}

// Renderer turns a series into an encoded image.
type Renderer interface {
	Render(series domain.AlignedSeries, metric domain.MetricDefinition, view View) ([]byte, error)
}

// palette holds one color per winter in catalog order.
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
}

const (
	tickEvery  = 5
	minTickGap = 3
)

// LineRenderer draws one line per visible winter with go-chart.
type LineRenderer struct {
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewLineRenderer creates a go-chart backed renderer.
func NewLineRenderer(metrics *observability.Metrics, logger *slog.Logger) *LineRenderer {
	return &LineRenderer{metrics: metrics, logger: logger}
}

// Render draws series. Absent values break a winter's line into separate
// segments rather than being bridged or drawn as zero.
func (r *LineRenderer) Render(series domain.AlignedSeries, metric domain.MetricDefinition, view View) ([]byte, error) {
	format := string(view.Format)

	lines, legend := buildLines(series, view.Hidden)
	if len(lines) == 0 || len(series.Points) == 0 {
		r.metrics.ChartRenders.WithLabelValues(format, "empty").Inc()
		return nil, ErrNoData
	}

	first := series.Points[0].Offset
	last := series.Points[len(series.Points)-1].Offset

	ch := gochart.Chart{
		Title:      fmt.Sprintf("%s (%s)", view.Locale.MetricTitle(metric.Key), view.Locale.Unit(metric.Unit)),
		Width:      view.Width,
		Height:     view.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Ticks: ticks(series.Points),
			Range: &gochart.ContinuousRange{Min: float64(first), Max: float64(max(last, first+1))},
		},
		YAxis: gochart.YAxis{
			Name:  view.Locale.Unit(metric.Unit),
			Range: valueRange(lines),
		},
		Series: lines,
	}
	// The legend reads from a chart holding one series per winter so split
	// lines are listed once.
	legendChart := ch
	legendChart.Series = legend
	ch.Elements = []gochart.Renderable{gochart.Legend(&legendChart)}

	provider := gochart.PNG
	if view.Format == FormatSVG {
		provider = gochart.SVG
	}

	var buf bytes.Buffer
	if err := ch.Render(provider, &buf); err != nil {
		r.metrics.ChartRenders.WithLabelValues(format, "error").Inc()
		r.logger.Error("chart render failed", "error", err, "metric", metric.Key, "format", format)
		return nil, fmt.Errorf("render %s chart: %w", metric.Key, err)
	}

	r.metrics.ChartRenders.WithLabelValues(format, "success").Inc()
	return buf.Bytes(), nil
}

// buildLines splits each visible winter into runs of present values. The
// second result has the first run of each winter, for the legend.
func buildLines(series domain.AlignedSeries, hidden map[string]bool) (lines, legend []gochart.Series) {
	for i, winter := range series.Winters {
		if hidden[winter] {
			continue
		}
		style := lineStyle(palette[i%len(palette)])

		var xs, ys []float64
		flush := func() {
			if len(xs) == 0 {
				return
			}
			s := gochart.ContinuousSeries{Name: winter, XValues: xs, YValues: ys, Style: style}
			if len(lines) == 0 || lines[len(lines)-1].GetName() != winter {
				legend = append(legend, s)
			}
			lines = append(lines, s)
			xs, ys = nil, nil
		}

		for _, p := range series.Points {
			v := p.Values[winter]
			if v == nil {
				flush()
				continue
			}
			xs = append(xs, float64(p.Offset))
			ys = append(ys, *v)
		}
		flush()
	}
	return lines, legend
}

func lineStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    2.5,
	}
}

// ticks labels the first and last day, the first of January, and every
// fifth day that does not crowd one of those. go-chart takes the x range
// from the ticks, so they always span [first, max(last, first+1)].
func ticks(points []domain.SeriesPoint) []gochart.Tick {
	if len(points) == 0 {
		return nil
	}
	first := points[0].Offset
	last := points[len(points)-1].Offset

	crowds := func(offset int) bool {
		return abs(last-offset) < minTickGap || abs(domain.JanuaryStart-offset) < minTickGap
	}

	var out []gochart.Tick
	for _, p := range points {
		pinned := p.Offset == first || p.Offset == last || p.Offset == domain.JanuaryStart
		regular := (p.Offset-first)%tickEvery == 0 && !crowds(p.Offset)
		if pinned || regular {
			out = append(out, gochart.Tick{Value: float64(p.Offset), Label: p.Label})
		}
	}
	if last == first {
		out = append(out, gochart.Tick{Value: float64(first + 1)})
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// valueRange spans every plotted value with a small margin. A flat series
// gets a unit margin so the axis never collapses.
func valueRange(lines []gochart.Series) *gochart.ContinuousRange {
	lo, hi := 0.0, 0.0
	seen := false
	for _, s := range lines {
		cs, ok := s.(gochart.ContinuousSeries)
		if !ok {
			continue
		}
		for _, y := range cs.YValues {
			if !seen {
				lo, hi, seen = y, y, true
				continue
			}
			lo = min(lo, y)
			hi = max(hi, y)
		}
	}

	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
