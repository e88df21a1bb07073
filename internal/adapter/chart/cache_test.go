package chart

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/winter-stats-service/internal/domain"
	"github.com/couchcryptid/winter-stats-service/internal/i18n"
	"github.com/couchcryptid/winter-stats-service/internal/observability"
)

// --- mock for cache tests ---

type countingRenderer struct {
	calls int
	err   error
}

func (m *countingRenderer) Render(series domain.AlignedSeries, _ domain.MetricDefinition, view View) ([]byte, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return []byte(series.Metric + ":" + string(view.Format)), nil
}

func cacheSeries() domain.AlignedSeries {
	return domain.AlignedSeries{
		Metric:  domain.MetricTemperature,
		Month:   domain.MonthAll,
		Winters: []string{"2023-24", "2024-25"},
	}
}

func pngView() View {
	return View{Format: FormatPNG, Width: 640, Height: 320, Locale: i18n.English}
}

// --- CachedRenderer tests ---

func TestCachedRenderer_Hit(t *testing.T) {
	inner := &countingRenderer{}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedRenderer(inner, 10, metrics)

	first, err := cached.Render(cacheSeries(), domain.MetricDefinition{}, pngView())
	require.NoError(t, err)
	second, err := cached.Render(cacheSeries(), domain.MetricDefinition{}, pngView())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "should only render once")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ChartCache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ChartCache.WithLabelValues("miss")), 0)
}

func TestCachedRenderer_DifferentViewsMiss(t *testing.T) {
	inner := &countingRenderer{}
	cached := NewCachedRenderer(inner, 10, observability.NewMetricsForTesting())

	svg := pngView()
	svg.Format = FormatSVG
	ru := pngView()
	ru.Locale = i18n.Russian
	hidden := pngView()
	hidden.Hidden = map[string]bool{"2024-25": true}

	for _, v := range []View{pngView(), svg, ru, hidden} {
		_, err := cached.Render(cacheSeries(), domain.MetricDefinition{}, v)
		require.NoError(t, err)
	}

	assert.Equal(t, 4, inner.calls)
}

func TestCachedRenderer_ErrorsAreNotCached(t *testing.T) {
	inner := &countingRenderer{err: ErrNoData}
	cached := NewCachedRenderer(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.Render(cacheSeries(), domain.MetricDefinition{}, pngView())
	require.ErrorIs(t, err, ErrNoData)
	_, err = cached.Render(cacheSeries(), domain.MetricDefinition{}, pngView())
	require.True(t, errors.Is(err, ErrNoData))

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, cached.cache.size())
}

func TestCacheKey_IgnoresUnknownHiddenAndOrder(t *testing.T) {
	a := pngView()
	a.Hidden = map[string]bool{"2024-25": true, "2023-24": true, "1999-00": true}
	b := pngView()
	b.Hidden = map[string]bool{"2023-24": true, "2024-25": true}

	assert.Equal(t, cacheKey(cacheSeries(), a), cacheKey(cacheSeries(), b))

	smoothed := cacheSeries()
	smoothed.Smoothed = true
	smoothed.Window = 7
	assert.NotEqual(t, cacheKey(cacheSeries(), a), cacheKey(smoothed, a))
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	data, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("A"), data)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))
	c.put("c", []byte("C")) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	_, ok = c.get("b")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.size())
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	c.get("a")
	c.put("c", []byte("C"))

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A1"))
	c.put("a", []byte("A2"))

	data, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("A2"), data)
	assert.Equal(t, 1, c.size())
}

func TestLRUCache_NonPositiveSizeHoldsOne(t *testing.T) {
	c := newLRUCache(0)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	assert.Equal(t, 1, c.size())
	_, ok := c.get("b")
	assert.True(t, ok)
}
