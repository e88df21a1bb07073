package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_EndToEnd(t *testing.T) {
	w := WinterDataset{Label: "2024-25", StartYear: 2024, Records: []DailyRecord{
		record(day(2024, time.December, 1), MetricTemperature, Float(10.0)),
		record(day(2024, time.December, 3), MetricTemperature, Float(12.0)),
	}}

	row := Aggregate(w, temperatureMetric())

	require.NotNil(t, row.December)
	assert.InDelta(t, 11.0, *row.December, 1e-9)
	assert.Nil(t, row.January)
	require.NotNil(t, row.Overall)
	assert.InDelta(t, 11.0, *row.Overall, 1e-9)
	assert.Equal(t, 2, row.DecemberCount)
	assert.Equal(t, 0, row.JanuaryCount)
	assert.Equal(t, "2024-25", row.Winter)
	assert.Equal(t, MetricTemperature, row.Metric)
}

func TestAggregate_SplitsOnJanuaryFirst(t *testing.T) {
	w := WinterDataset{Label: "2020-21", StartYear: 2020, Records: []DailyRecord{
		record(day(2020, time.December, 31), MetricPrecipitation, Float(2)),
		record(day(2021, time.January, 1), MetricPrecipitation, Float(4)),
		record(day(2021, time.January, 2), MetricPrecipitation, Float(6)),
	}}
	precip := MetricDefinition{Key: MetricPrecipitation, Unit: "mm"}

	row := Aggregate(w, precip)

	assert.InDelta(t, 2.0, *row.December, 1e-9)
	assert.InDelta(t, 5.0, *row.January, 1e-9)
	assert.Equal(t, row.DecemberCount+row.JanuaryCount, 3)
	// Overall is the mean of the union, not the mean of the monthly means.
	assert.InDelta(t, 4.0, *row.Overall, 1e-9)
}

func TestAggregate_EmptyDecemberLeavesOverallFromJanuary(t *testing.T) {
	w := WinterDataset{Label: "2023-24", StartYear: 2023, Records: []DailyRecord{
		record(day(2023, time.December, 1), MetricTemperature, nil),
		record(day(2024, time.January, 10), MetricTemperature, Float(-8)),
		record(day(2024, time.January, 11), MetricTemperature, Float(-10)),
	}}

	row := Aggregate(w, temperatureMetric())

	assert.Nil(t, row.December)
	assert.Equal(t, 0, row.DecemberCount)
	assert.InDelta(t, -9.0, *row.January, 1e-9)
	assert.InDelta(t, -9.0, *row.Overall, 1e-9)
}

func TestAggregate_NoRecords(t *testing.T) {
	row := Aggregate(WinterDataset{Label: "empty", StartYear: 2022}, temperatureMetric())

	assert.Nil(t, row.December)
	assert.Nil(t, row.January)
	assert.Nil(t, row.Overall)
}

func TestAggregate_AppliesTransform(t *testing.T) {
	w := WinterDataset{Label: "2019-20", StartYear: 2019, Records: []DailyRecord{
		record(day(2019, time.December, 1), MetricSunshine, Float(3600)),
		record(day(2019, time.December, 2), MetricSunshine, Float(10800)),
	}}
	sunshine := MetricDefinition{Key: MetricSunshine, Unit: "h", Transform: SecondsToHours}

	row := Aggregate(w, sunshine)

	assert.InDelta(t, 2.0, *row.December, 1e-9)
}

func TestAggregate_IgnoresOutOfWindowRecords(t *testing.T) {
	w := WinterDataset{Label: "2019-20", StartYear: 2019, Records: []DailyRecord{
		record(day(2019, time.November, 30), MetricTemperature, Float(100)),
		record(day(2019, time.December, 1), MetricTemperature, Float(1)),
		record(day(2020, time.February, 1), MetricTemperature, Float(100)),
	}}

	row := Aggregate(w, temperatureMetric())

	assert.InDelta(t, 1.0, *row.Overall, 1e-9)
	assert.Equal(t, 1, row.DecemberCount)
	assert.Equal(t, 0, row.JanuaryCount)
}

func TestSummarize_WinterMajorOrder(t *testing.T) {
	winters := []WinterDataset{
		{Label: "a", StartYear: 2019},
		{Label: "b", StartYear: 2020},
	}
	metrics := DefaultMetrics()

	rows := Summarize(winters, metrics)

	require.Len(t, rows, 8)
	assert.Equal(t, "a", rows[0].Winter)
	assert.Equal(t, MetricTemperature, rows[0].Metric)
	assert.Equal(t, MetricSunshine, rows[3].Metric)
	assert.Equal(t, "b", rows[4].Winter)
}
