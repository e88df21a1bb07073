package domain

import "strconv"

// LabelFunc formats a day offset for display, e.g. 0 -> "Dec 1".
type LabelFunc func(offset int) string

// SeriesPoint is one x-axis position of an aligned series. Values is keyed by
// winter label; a nil value means the winter has no data for that day.
type SeriesPoint struct {
	Offset int                 `json:"offset"`
	Label  string              `json:"label"`
	Values map[string]*float64 `json:"values"`
}

// AlignedSeries is one metric across all winters, aligned on day offset.
type AlignedSeries struct {
	Metric   string        `json:"metric"`
	Month    MonthFilter   `json:"month"`
	Smoothed bool          `json:"smoothed"`
	Window   int           `json:"window,omitempty"`
	Winters  []string      `json:"winters"`
	Points   []SeriesPoint `json:"points"`
}

// Align builds the series for metric over the month's offset range. Each
// winter's records are indexed by offset up front; when two records map to
// the same offset the first one wins. Records outside the window are ignored.
// A nil labels func falls back to the bare offset number.
func Align(winters []WinterDataset, metric MetricDefinition, month MonthFilter, labels LabelFunc) AlignedSeries {
	if labels == nil {
		labels = strconv.Itoa
	}

	indexes := make([]map[int]DailyRecord, len(winters))
	names := make([]string, len(winters))
	for i, w := range winters {
		indexes[i] = indexByOffset(w)
		names[i] = w.Label
	}

	lo, hi := month.Range()
	points := make([]SeriesPoint, 0, hi-lo)
	for offset := lo; offset < hi; offset++ {
		values := make(map[string]*float64, len(winters))
		for i, w := range winters {
			rec, ok := indexes[i][offset]
			if !ok {
				values[w.Label] = nil
				continue
			}
			values[w.Label] = metric.Apply(rec.Value(metric.Key))
		}
		points = append(points, SeriesPoint{
			Offset: offset,
			Label:  labels(offset),
			Values: values,
		})
	}

	return AlignedSeries{
		Metric:  metric.Key,
		Month:   month,
		Winters: names,
		Points:  points,
	}
}

func indexByOffset(w WinterDataset) map[int]DailyRecord {
	idx := make(map[int]DailyRecord, len(w.Records))
	for _, rec := range w.Records {
		offset := DayOffset(rec.Date, w.StartYear)
		if !InWindow(offset) {
			continue
		}
		if _, seen := idx[offset]; seen {
			continue
		}
		idx[offset] = rec
	}
	return idx
}
