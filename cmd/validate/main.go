// Command validate checks the winter fixtures for integrity: manifest and
// label consistency, Dec 1 - Jan 31 window coverage, duplicate days, value
// plausibility, and per-winter gap and null counts. It finishes by printing
// the summary table the service serves.
//
// Usage:
//
//	go run ./cmd/validate              # embedded fixtures
//	go run ./cmd/validate -dir data    # a directory holding winters.yaml
//	go run ./cmd/validate -lang ru -summary=false
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/couchcryptid/winter-stats-service/internal/domain"
	"github.com/couchcryptid/winter-stats-service/internal/fixtures"
	"github.com/couchcryptid/winter-stats-service/internal/i18n"
)

// plausible bounds per metric, in display units.
var plausible = map[string][2]float64{
	domain.MetricTemperature:   {-60, 40},
	domain.MetricPrecipitation: {0, 200},
	domain.MetricCloudCover:    {0, 100},
	domain.MetricSunshine:      {0, 24},
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dir := flag.String("dir", "", "directory with winters.yaml and daily JSON files (default: embedded fixtures)")
	lang := flag.String("lang", "en", "language for the summary table (en or ru)")
	summary := flag.Bool("summary", true, "print the summary table")
	flag.Parse()

	locale, ok := i18n.Lookup(*lang)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown -lang %q\n", *lang)
		flag.Usage()
		os.Exit(2)
	}

	if code := run(*dir, locale, *summary); code != 0 {
		os.Exit(code)
	}
}

func run(dir string, locale i18n.Locale, showSummary bool) int {
	fmt.Println("=== Winter Fixture Integrity Validation ===")
	fmt.Println()

	var (
		catalog *domain.Catalog
		err     error
	)
	if dir == "" {
		catalog, err = fixtures.Load()
	} else {
		catalog, err = fixtures.LoadFS(os.DirFS(dir), domain.DefaultMetrics())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load fixtures: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateManifest(catalog),
		validateWindow(catalog),
		validateValues(catalog),
		reportCoverage(catalog),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Location: %s (%.4f, %.4f)\n", catalog.Location.Name, catalog.Location.Latitude, catalog.Location.Longitude)
	fmt.Printf("Records: %d across %d winters\n", catalog.RecordCount(), len(catalog.Winters))

	for _, p := range phases {
		if len(p.errors) == 0 && len(p.notes) == 0 {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
		for _, n := range p.notes {
			fmt.Printf("  note: %s\n", n)
		}
	}

	if showSummary {
		printSummary(catalog, locale)
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Manifest ──
// Labels must be unique and agree with the start year, e.g. 2024 -> "2024-25".

func validateManifest(c *domain.Catalog) *phase {
	p := &phase{name: "Phase 1: Manifest (labels, start years)"}

	seenYears := map[int]string{}
	for _, w := range c.Winters {
		if want := expectedLabel(w.StartYear); w.Label != want {
			p.errorf("%s: label does not match start_year %d (expected %q)", w.Label, w.StartYear, want)
		}
		if other, dup := seenYears[w.StartYear]; dup {
			p.errorf("%s: start_year %d already used by %s", w.Label, w.StartYear, other)
		}
		seenYears[w.StartYear] = w.Label
		if len(w.Records) == 0 {
			p.errorf("%s: no daily records", w.Label)
		}
	}
	return p
}

func expectedLabel(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// ── Phase 2: Window ──
// Every record falls on Dec 1 - Jan 31, once, in date order.

func validateWindow(c *domain.Catalog) *phase {
	p := &phase{name: "Phase 2: Window (range, duplicates, order)"}

	for _, w := range c.Winters {
		seen := map[int]bool{}
		var prev time.Time
		for i, rec := range w.Records {
			date := rec.Date.Format(time.DateOnly)
			offset := domain.DayOffset(rec.Date, w.StartYear)
			switch {
			case !domain.InWindow(offset):
				p.errorf("%s: %s is outside Dec 1 - Jan 31 (offset %d)", w.Label, date, offset)
			case seen[offset]:
				p.errorf("%s: %s duplicates offset %d; the first record wins", w.Label, date, offset)
			default:
				seen[offset] = true
			}
			if i > 0 && !rec.Date.After(prev) {
				p.errorf("%s: %s is not after %s", w.Label, date, prev.Format(time.DateOnly))
			}
			prev = rec.Date
		}
	}
	return p
}

// ── Phase 3: Values ──
// Present values must be finite-looking and inside plausible bounds.

func validateValues(c *domain.Catalog) *phase {
	p := &phase{name: "Phase 3: Values (plausible ranges)"}

	for _, w := range c.Winters {
		for _, m := range c.Metrics {
			bounds, ok := plausible[m.Key]
			if !ok {
				continue
			}
			present := 0
			for _, rec := range w.Records {
				v := m.Apply(rec.Value(m.Key))
				if v == nil {
					continue
				}
				present++
				if *v < bounds[0] || *v > bounds[1] {
					p.errorf("%s %s: %s = %g %s outside [%g, %g]",
						w.Label, rec.Date.Format(time.DateOnly), m.Key, *v, m.Unit, bounds[0], bounds[1])
				}
			}
			if present == 0 {
				p.errorf("%s: %s has no values", w.Label, m.Key)
			}
		}
	}
	return p
}

// ── Phase 4: Coverage ──
// Gaps and nulls are valid input; they are listed, never failed.

func reportCoverage(c *domain.Catalog) *phase {
	p := &phase{name: "Phase 4: Coverage (gaps, nulls)"}

	for _, w := range c.Winters {
		have := map[int]bool{}
		for _, rec := range w.Records {
			have[domain.DayOffset(rec.Date, w.StartYear)] = true
		}
		for offset := range domain.DaysInWindow {
			if !have[offset] {
				p.notef("%s: no record for %s", w.Label, domain.OffsetDate(offset, w.StartYear).Format(time.DateOnly))
			}
		}

		for _, m := range c.Metrics {
			nulls := 0
			for _, rec := range w.Records {
				if rec.Value(m.Key) == nil {
					nulls++
				}
			}
			if nulls > 0 {
				p.notef("%s: %s absent on %d day(s)", w.Label, m.Key, nulls)
			}
		}
	}
	return p
}

// ── Summary ──

func printSummary(c *domain.Catalog, locale i18n.Locale) {
	cols := locale.Columns()
	fmt.Println("\n=== Summary ===")

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", cols.Winter, cols.Metric, cols.December, cols.January, cols.Overall)
	for _, row := range domain.Summarize(c.Winters, c.Metrics) {
		unit := ""
		if m, ok := c.Metric(row.Metric); ok {
			unit = locale.Unit(m.Unit)
		}
		fmt.Fprintf(tw, "%s\t%s (%s)\t%s\t%s\t%s\t\n",
			row.Winter, locale.MetricTitle(row.Metric), unit,
			formatMean(row.December, row.DecemberCount),
			formatMean(row.January, row.JanuaryCount),
			formatMean(row.Overall, row.DecemberCount+row.JanuaryCount),
		)
	}
	tw.Flush() //nolint:errcheck // stdout
}

func formatMean(v *float64, n int) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64) + " (n=" + strconv.Itoa(n) + ")"
}
