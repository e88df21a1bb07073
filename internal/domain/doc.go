// Package domain turns daily winter weather records into chart-ready series
// and monthly summary statistics.
//
// # Winter Window
//
// Every winter is viewed through the same 62-day window, December 1 of the
// start year through January 31 of the following year. A calendar date maps
// to a day offset:
//
//	offset 0..30   →  Dec 1..Dec 31 of StartYear
//	offset 31..61  →  Jan 1..Jan 31 of StartYear+1
//
// The offset is the alignment key across winters whose absolute dates differ.
// [DayOffset] is the only place the mapping is computed; [Align] and
// [Aggregate] both go through it.
//
// # Absent Values
//
// A missing day, a JSON null, or a missing metric key are all "absent" and
// are represented by a nil *float64. Absent is distinct from zero: it is
// skipped by every mean, carried through transforms, and rendered as a gap.
// A mean over zero samples is absent, never NaN.
//
// # Units
//
// Fixtures carry Open-Meteo daily units. Sunshine duration arrives in seconds
// and is shown in hours via [SecondsToHours]; the other metrics are shown as
// recorded.
//
// # Smoothing
//
// [Smooth] is a centered moving average with boundary truncation. It never
// mixes winters and never touches offsets or labels.
package domain
