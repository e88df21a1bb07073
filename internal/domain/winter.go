package domain

import "time"

// Location describes the single site all winters were measured at.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// DailyRecord is one calendar day of measurements. A nil value or a missing
// key means the metric was not recorded that day.
type DailyRecord struct {
	Date   time.Time
	Values map[string]*float64
}

// Value returns the raw value for a metric key, or nil when absent.
func (r DailyRecord) Value(key string) *float64 {
	v, ok := r.Values[key]
	if !ok || v == nil {
		return nil
	}
	return Float(*v)
}

// WinterDataset is one season of daily records, Dec 1 through Jan 31.
type WinterDataset struct {
	Label     string
	StartYear int
	Records   []DailyRecord
}

// Catalog is the immutable set of winters and metrics the service renders.
// It is built once at startup and passed explicitly to every computation.
type Catalog struct {
	Location Location
	Winters  []WinterDataset
	Metrics  []MetricDefinition
}

// NewCatalog copies the given slices so later mutation by the caller cannot
// leak into the catalog.
func NewCatalog(loc Location, winters []WinterDataset, metrics []MetricDefinition) *Catalog {
	ws := make([]WinterDataset, len(winters))
	copy(ws, winters)
	ms := make([]MetricDefinition, len(metrics))
	copy(ms, metrics)
	return &Catalog{Location: loc, Winters: ws, Metrics: ms}
}

// Metric looks up a metric definition by key.
func (c *Catalog) Metric(key string) (MetricDefinition, bool) {
	for _, m := range c.Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return MetricDefinition{}, false
}

// WinterLabels returns the winter labels in catalog order.
func (c *Catalog) WinterLabels() []string {
	labels := make([]string, len(c.Winters))
	for i, w := range c.Winters {
		labels[i] = w.Label
	}
	return labels
}

// RecordCount is the total number of daily records across all winters.
func (c *Catalog) RecordCount() int {
	n := 0
	for _, w := range c.Winters {
		n += len(w.Records)
	}
	return n
}

// Float returns a pointer to a copy of v.
func Float(v float64) *float64 {
	return &v
}
