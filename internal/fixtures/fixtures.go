// Package fixtures loads the embedded winter datasets into a domain.Catalog.
package fixtures

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/winter-stats-service/internal/domain"
)

// ManifestFile is the manifest path inside the fixture filesystem.
const ManifestFile = "winters.yaml"

//go:embed data/*.yaml data/*.json
var embedded embed.FS

// Manifest lists the winters to load and where their daily data lives.
type Manifest struct {
	Location ManifestLocation `yaml:"location"`
	Winters  []ManifestEntry  `yaml:"winters"`
}

// ManifestLocation is the measurement site.
type ManifestLocation struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Timezone  string  `yaml:"timezone"`
}

// ManifestEntry is one winter in the manifest.
type ManifestEntry struct {
	Label     string `yaml:"label"`
	StartYear int    `yaml:"start_year"`
	File      string `yaml:"file"`
}

// archive is the Open-Meteo archive response shape. Only the daily block is
// read; each metric column must be as long as the time column.
type archive struct {
	Daily map[string]json.RawMessage `json:"daily"`
}

// Load reads the embedded fixtures.
func Load() (*domain.Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded fixtures: %w", err)
	}
	return LoadFS(sub, domain.DefaultMetrics())
}

// LoadFS reads a manifest and its winter files from fsys and builds a catalog
// over the given metrics. Metric columns not listed in metrics are ignored.
func LoadFS(fsys fs.FS, metrics []domain.MetricDefinition) (*domain.Catalog, error) {
	manifest, err := readManifest(fsys)
	if err != nil {
		return nil, err
	}

	winters := make([]domain.WinterDataset, 0, len(manifest.Winters))
	for _, entry := range manifest.Winters {
		w, err := readWinter(fsys, entry, metrics)
		if err != nil {
			return nil, fmt.Errorf("winter %s: %w", entry.Label, err)
		}
		winters = append(winters, w)
	}

	loc := domain.Location{
		Name:      manifest.Location.Name,
		Latitude:  manifest.Location.Latitude,
		Longitude: manifest.Location.Longitude,
		Timezone:  manifest.Location.Timezone,
	}
	return domain.NewCatalog(loc, winters, metrics), nil
}

func readManifest(fsys fs.FS) (Manifest, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Winters) == 0 {
		return Manifest{}, errors.New("manifest lists no winters")
	}
	seen := make(map[string]bool, len(m.Winters))
	for i, w := range m.Winters {
		if w.Label == "" || w.File == "" {
			return Manifest{}, fmt.Errorf("manifest entry %d: label and file are required", i)
		}
		if w.StartYear <= 0 {
			return Manifest{}, fmt.Errorf("manifest entry %d (%s): start_year must be positive", i, w.Label)
		}
		if seen[w.Label] {
			return Manifest{}, fmt.Errorf("manifest entry %d: duplicate label %q", i, w.Label)
		}
		seen[w.Label] = true
	}
	return m, nil
}

func readWinter(fsys fs.FS, entry ManifestEntry, metrics []domain.MetricDefinition) (domain.WinterDataset, error) {
	data, err := fs.ReadFile(fsys, path.Clean(entry.File))
	if err != nil {
		return domain.WinterDataset{}, fmt.Errorf("read %s: %w", entry.File, err)
	}

	records, err := ParseDaily(data, metrics)
	if err != nil {
		return domain.WinterDataset{}, fmt.Errorf("parse %s: %w", entry.File, err)
	}

	return domain.WinterDataset{
		Label:     entry.Label,
		StartYear: entry.StartYear,
		Records:   records,
	}, nil
}

// ParseDaily decodes an Open-Meteo daily block into records. A metric column
// that is missing entirely leaves that metric absent on every day; a column
// of the wrong length is an error.
func ParseDaily(data []byte, metrics []domain.MetricDefinition) ([]domain.DailyRecord, error) {
	var a archive
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode archive: %w", err)
	}
	rawTime, ok := a.Daily["time"]
	if !ok {
		return nil, errors.New("daily.time is missing")
	}
	var times []string
	if err := json.Unmarshal(rawTime, &times); err != nil {
		return nil, fmt.Errorf("decode daily.time: %w", err)
	}

	records := make([]domain.DailyRecord, len(times))
	for i, s := range times {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, fmt.Errorf("daily.time[%d]: %w", i, err)
		}
		records[i] = domain.DailyRecord{Date: d, Values: make(map[string]*float64, len(metrics))}
	}

	for _, m := range metrics {
		raw, ok := a.Daily[m.Key]
		if !ok {
			continue
		}
		var column []*float64
		if err := json.Unmarshal(raw, &column); err != nil {
			return nil, fmt.Errorf("decode daily.%s: %w", m.Key, err)
		}
		if len(column) != len(times) {
			return nil, fmt.Errorf("daily.%s has %d values for %d days", m.Key, len(column), len(times))
		}
		for i, v := range column {
			records[i].Values[m.Key] = v
		}
	}

	return records, nil
}
