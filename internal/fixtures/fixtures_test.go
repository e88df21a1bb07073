package fixtures

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/winter-stats-service/internal/domain"
)

const testManifest = `
location:
  name: Testville
  latitude: 1.5
  longitude: 2.5
  timezone: UTC
winters:
  - label: "2024-25"
    start_year: 2024
    file: a.json
`

func TestLoad_Embedded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"2019-20", "2020-21", "2021-22", "2022-23", "2023-24", "2024-25"}, c.WinterLabels())
	assert.Equal(t, "Moscow", c.Location.Name)
	assert.Len(t, c.Metrics, 4)

	for _, w := range c.Winters {
		require.NotEmpty(t, w.Records, w.Label)
		first := w.Records[0]
		assert.Equal(t, 0, domain.DayOffset(first.Date, w.StartYear), "%s starts on Dec 1", w.Label)
		for _, rec := range w.Records {
			assert.True(t, domain.InWindow(domain.DayOffset(rec.Date, w.StartYear)), "%s %s", w.Label, rec.Date)
		}
	}
}

func TestLoad_EmbeddedKnownGaps(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	byLabel := map[string]domain.WinterDataset{}
	for _, w := range c.Winters {
		byLabel[w.Label] = w
	}
	assert.Len(t, byLabel["2019-20"].Records, domain.DaysInWindow)
	assert.Len(t, byLabel["2023-24"].Records, domain.DaysInWindow-2, "Dec 9 and Dec 10 are missing")

	temp, _ := c.Metric(domain.MetricTemperature)
	series := domain.Align([]domain.WinterDataset{byLabel["2023-24"]}, temp, domain.MonthDecember, nil)
	assert.Nil(t, series.Points[8].Values["2023-24"])
	assert.Nil(t, series.Points[9].Values["2023-24"])
	assert.NotNil(t, series.Points[10].Values["2023-24"])
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		ManifestFile: {Data: []byte(testManifest)},
		"a.json": {Data: []byte(`{"daily":{
			"time":["2024-12-01","2024-12-03"],
			"temperature_2m_mean":[10.0,12.0],
			"sunshine_duration":[3600,null]
		}}`)},
	}

	c, err := LoadFS(fsys, domain.DefaultMetrics())
	require.NoError(t, err)

	require.Len(t, c.Winters, 1)
	w := c.Winters[0]
	assert.Equal(t, "2024-25", w.Label)
	assert.Equal(t, 2024, w.StartYear)
	assert.Equal(t, domain.Location{Name: "Testville", Latitude: 1.5, Longitude: 2.5, Timezone: "UTC"}, c.Location)

	require.Len(t, w.Records, 2)
	assert.Equal(t, time.Date(2024, time.December, 3, 0, 0, 0, 0, time.UTC), w.Records[1].Date)
	assert.InDelta(t, 12.0, *w.Records[1].Value(domain.MetricTemperature), 1e-9)
	assert.InDelta(t, 3600.0, *w.Records[0].Value(domain.MetricSunshine), 1e-9)
	assert.Nil(t, w.Records[1].Value(domain.MetricSunshine))
	assert.Nil(t, w.Records[0].Value(domain.MetricCloudCover), "missing column is absent")
}

func TestLoadFS_Errors(t *testing.T) {
	tests := []struct {
		name     string
		fsys     fstest.MapFS
		contains string
	}{
		{
			name:     "missing manifest",
			fsys:     fstest.MapFS{},
			contains: "read manifest",
		},
		{
			name:     "empty manifest",
			fsys:     fstest.MapFS{ManifestFile: {Data: []byte("winters: []\n")}},
			contains: "no winters",
		},
		{
			name: "duplicate label",
			fsys: fstest.MapFS{ManifestFile: {Data: []byte(`winters:
  - {label: a, start_year: 2020, file: a.json}
  - {label: a, start_year: 2021, file: b.json}
`)}},
			contains: "duplicate label",
		},
		{
			name: "missing start year",
			fsys: fstest.MapFS{ManifestFile: {Data: []byte(`winters:
  - {label: "2024-25", file: a.json}
`)}},
			contains: "manifest entry 0 (2024-25): start_year must be positive",
		},
		{
			name: "negative start year",
			fsys: fstest.MapFS{ManifestFile: {Data: []byte(`winters:
  - {label: "2024-25", start_year: -1, file: a.json}
`)}},
			contains: "start_year must be positive",
		},
		{
			name:     "missing data file",
			fsys:     fstest.MapFS{ManifestFile: {Data: []byte(testManifest)}},
			contains: "read a.json",
		},
		{
			name: "length mismatch",
			fsys: fstest.MapFS{
				ManifestFile: {Data: []byte(testManifest)},
				"a.json":     {Data: []byte(`{"daily":{"time":["2024-12-01"],"precipitation_sum":[1,2]}}`)},
			},
			contains: "daily.precipitation_sum has 2 values for 1 days",
		},
		{
			name: "bad date",
			fsys: fstest.MapFS{
				ManifestFile: {Data: []byte(testManifest)},
				"a.json":     {Data: []byte(`{"daily":{"time":["12/01/2024"]}}`)},
			},
			contains: "daily.time[0]",
		},
		{
			name: "no time column",
			fsys: fstest.MapFS{
				ManifestFile: {Data: []byte(testManifest)},
				"a.json":     {Data: []byte(`{"daily":{}}`)},
			},
			contains: "daily.time is missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.fsys, domain.DefaultMetrics())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
