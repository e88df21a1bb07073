package domain

import "math"

// Metric keys as they appear in the daily fixtures.
const (
	MetricTemperature   = "temperature_2m_mean"
	MetricPrecipitation = "precipitation_sum"
	MetricCloudCover    = "cloud_cover_mean"
	MetricSunshine      = "sunshine_duration"
)

const secondsPerHour = 3600

// Transform converts a raw value to display units. Implementations must map
// nil to nil.
type Transform func(*float64) *float64

// MetricDefinition describes one tracked quantity. Titles are localized
// separately; see package i18n.
type MetricDefinition struct {
	Key       string
	Unit      string
	Transform Transform
}

// Apply runs the metric's transform on v. Absent values are never passed
// to the transform.
func (m MetricDefinition) Apply(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if m.Transform == nil {
		return Float(*v)
	}
	return m.Transform(Float(*v))
}

// DefaultMetrics returns the four metrics rendered by the service, in
// display order.
func DefaultMetrics() []MetricDefinition {
	return []MetricDefinition{
		{Key: MetricTemperature, Unit: "°C"},
		{Key: MetricPrecipitation, Unit: "mm"},
		{Key: MetricCloudCover, Unit: "%"},
		{Key: MetricSunshine, Unit: "h", Transform: SecondsToHours},
	}
}

// SecondsToHours converts a duration in seconds to hours rounded to two
// decimals, e.g. 3600 -> 1.00.
func SecondsToHours(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Float(math.Round(*v/secondsPerHour*100) / 100)
}
