package domain

import (
	"math"
	"time"
)

const (
	// DaysInWindow is the number of offsets in the Dec 1 - Jan 31 window.
	DaysInWindow = 62

	// JanuaryStart is the offset of Jan 1.
	JanuaryStart = 31

	hoursPerDay = 24
)

// DayOffset returns the whole days elapsed from December 1 of startYear to
// date. Only the civil date of date is used; both ends are taken at midnight
// UTC and the difference is rounded so time-of-day and zone offsets cannot
// shift the result. Offsets outside [0, DaysInWindow) are returned as-is.
func DayOffset(date time.Time, startYear int) int {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	origin := time.Date(startYear, time.December, 1, 0, 0, 0, 0, time.UTC)
	return int(math.Round(day.Sub(origin).Hours() / hoursPerDay))
}

// OffsetDate is the inverse of DayOffset: the calendar date at offset days
// after December 1 of startYear, at midnight UTC.
func OffsetDate(offset, startYear int) time.Time {
	return time.Date(startYear, time.December, 1+offset, 0, 0, 0, 0, time.UTC)
}

// InWindow reports whether offset lies in the Dec 1 - Jan 31 window.
func InWindow(offset int) bool {
	return offset >= 0 && offset < DaysInWindow
}

// MonthFilter selects which part of the window is rendered.
type MonthFilter string

const (
	MonthAll      MonthFilter = "all"
	MonthDecember MonthFilter = "dec"
	MonthJanuary  MonthFilter = "jan"
)

// ParseMonthFilter maps a query value to a filter, defaulting to MonthAll
// for empty or unrecognized input.
func ParseMonthFilter(s string) MonthFilter {
	switch MonthFilter(s) {
	case MonthDecember, MonthJanuary:
		return MonthFilter(s)
	default:
		return MonthAll
	}
}

// Range returns the half-open offset range [lo, hi) covered by the filter.
func (f MonthFilter) Range() (lo, hi int) {
	switch f {
	case MonthDecember:
		return 0, JanuaryStart
	case MonthJanuary:
		return JanuaryStart, DaysInWindow
	default:
		return 0, DaysInWindow
	}
}
