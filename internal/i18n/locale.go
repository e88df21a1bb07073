// Package i18n holds the display strings for the two supported languages and
// picks one for a request.
package i18n

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"

	"github.com/couchcryptid/winter-stats-service/internal/domain"
)

// Locale is a strategy for turning day offsets and metric keys into display
// text. The domain package never formats text; it takes a Locale's DayLabel
// as a domain.LabelFunc.
type Locale struct {
	Key    string
	Tag    language.Tag
	months [2]string // abbreviated December, January

	metricTitles map[string]string
	units        map[string]string
	columns      Columns
}

// Columns are the summary table headers.
type Columns struct {
	Winter   string `json:"winter"`
	Metric   string `json:"metric"`
	December string `json:"december"`
	January  string `json:"january"`
	Overall  string `json:"overall"`
}

var (
	English = Locale{
		Key:    "en",
		Tag:    language.English,
		months: [2]string{"Dec", "Jan"},
		metricTitles: map[string]string{
			domain.MetricTemperature:   "Mean temperature",
			domain.MetricPrecipitation: "Precipitation",
			domain.MetricCloudCover:    "Cloud cover",
			domain.MetricSunshine:      "Sunshine duration",
		},
		columns: Columns{Winter: "Winter", Metric: "Metric", December: "December", January: "January", Overall: "Overall"},
	}

	Russian = Locale{
		Key:    "ru",
		Tag:    language.Russian,
		months: [2]string{"Дек", "Янв"},
		metricTitles: map[string]string{
			domain.MetricTemperature:   "Средняя температура",
			domain.MetricPrecipitation: "Осадки",
			domain.MetricCloudCover:    "Облачность",
			domain.MetricSunshine:      "Продолжительность солнечного сияния",
		},
		units: map[string]string{
			"mm": "мм",
			"h":  "ч",
		},
		columns: Columns{Winter: "Зима", Metric: "Показатель", December: "Декабрь", January: "Январь", Overall: "Всего"},
	}
)

// DayLabel formats an offset as "Dec 1".."Dec 31", "Jan 1".."Jan 31".
// Offsets outside the window fall back to the bare number.
func (l Locale) DayLabel(offset int) string {
	switch {
	case offset >= 0 && offset < domain.JanuaryStart:
		return fmt.Sprintf("%s %d", l.months[0], offset+1)
	case offset >= domain.JanuaryStart && offset < domain.DaysInWindow:
		return fmt.Sprintf("%s %d", l.months[1], offset-domain.JanuaryStart+1)
	default:
		return strconv.Itoa(offset)
	}
}

// Labels returns DayLabel as a domain.LabelFunc.
func (l Locale) Labels() domain.LabelFunc {
	return l.DayLabel
}

// MetricTitle returns the localized title for a metric key, or the key
// itself when no translation exists.
func (l Locale) MetricTitle(key string) string {
	if t, ok := l.metricTitles[key]; ok {
		return t
	}
	return key
}

// Unit localizes a display unit. Symbols like "°C" and "%" pass through.
func (l Locale) Unit(unit string) string {
	if u, ok := l.units[unit]; ok {
		return u
	}
	return unit
}

// Columns returns the summary table headers.
func (l Locale) Columns() Columns {
	return l.columns
}
