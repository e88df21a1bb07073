package domain

// SummaryRow holds the monthly and overall means of one metric for one
// winter. A nil mean means the corresponding subset had no values.
type SummaryRow struct {
	Winter        string   `json:"winter"`
	Metric        string   `json:"metric"`
	December      *float64 `json:"december"`
	January       *float64 `json:"january"`
	Overall       *float64 `json:"overall"`
	DecemberCount int      `json:"december_count"`
	JanuaryCount  int      `json:"january_count"`
}

// Aggregate computes the December, January and overall means of metric for
// one winter. Records are split on the same day offsets the aligner uses, so
// table rows and chart points refer to the same days; records outside the
// Dec 1 - Jan 31 window are ignored. Absent values are skipped.
func Aggregate(w WinterDataset, metric MetricDefinition) SummaryRow {
	var dec, jan []float64
	for _, rec := range w.Records {
		offset := DayOffset(rec.Date, w.StartYear)
		if !InWindow(offset) {
			continue
		}
		v := metric.Apply(rec.Value(metric.Key))
		if v == nil {
			continue
		}
		if offset < JanuaryStart {
			dec = append(dec, *v)
		} else {
			jan = append(jan, *v)
		}
	}

	all := make([]float64, 0, len(dec)+len(jan))
	all = append(all, dec...)
	all = append(all, jan...)

	return SummaryRow{
		Winter:        w.Label,
		Metric:        metric.Key,
		December:      meanOf(dec),
		January:       meanOf(jan),
		Overall:       meanOf(all),
		DecemberCount: len(dec),
		JanuaryCount:  len(jan),
	}
}

// Summarize aggregates every (winter, metric) pair, winter-major in the
// order given.
func Summarize(winters []WinterDataset, metrics []MetricDefinition) []SummaryRow {
	rows := make([]SummaryRow, 0, len(winters)*len(metrics))
	for _, w := range winters {
		for _, m := range metrics {
			rows = append(rows, Aggregate(w, m))
		}
	}
	return rows
}
