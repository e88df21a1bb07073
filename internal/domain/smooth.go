package domain

import "gonum.org/v1/gonum/stat"

// DefaultSmoothingWindow is the moving-average width used when none is given.
const DefaultSmoothingWindow = 7

// Smooth applies a centered moving average to every winter of the series
// independently. For each point it averages the non-absent values within
// window/2 points either side, clamped to the series bounds; neighbors past
// either end are excluded rather than wrapped. A point with no values in
// range stays absent. Offsets and labels are copied unchanged.
//
// A window of 1 is the identity. Non-positive windows use
// DefaultSmoothingWindow. Smoothing an already smoothed series widens the
// effective window.
func Smooth(series AlignedSeries, window int) AlignedSeries {
	if window <= 0 {
		window = DefaultSmoothingWindow
	}
	half := window / 2

	out := series
	out.Smoothed = true
	out.Window = window
	out.Winters = append([]string(nil), series.Winters...)
	out.Points = make([]SeriesPoint, len(series.Points))

	n := len(series.Points)
	for i, p := range series.Points {
		lo := max(0, i-half)
		hi := min(n-1, i+half)

		values := make(map[string]*float64, len(series.Winters))
		for _, winter := range series.Winters {
			samples := make([]float64, 0, hi-lo+1)
			for j := lo; j <= hi; j++ {
				if v := series.Points[j].Values[winter]; v != nil {
					samples = append(samples, *v)
				}
			}
			values[winter] = meanOf(samples)
		}

		out.Points[i] = SeriesPoint{Offset: p.Offset, Label: p.Label, Values: values}
	}
	return out
}

// meanOf returns the arithmetic mean of xs, or nil for an empty sample.
func meanOf(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	return Float(stat.Mean(xs, nil))
}
