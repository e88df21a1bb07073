package chart

import (
	"container/list"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/couchcryptid/winter-stats-service/internal/domain"
	"github.com/couchcryptid/winter-stats-service/internal/observability"
)

// CachedRenderer wraps a Renderer with an in-memory LRU of encoded images.
// The catalog never changes after startup, so an entry stays valid until
// it is evicted. Returned slices are shared and must not be modified.
type CachedRenderer struct {
	inner   Renderer
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedRenderer creates a cache decorator around a renderer.
func NewCachedRenderer(inner Renderer, maxEntries int, metrics *observability.Metrics) *CachedRenderer {
	return &CachedRenderer{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedRenderer) Render(series domain.AlignedSeries, metric domain.MetricDefinition, view View) ([]byte, error) {
	key := cacheKey(series, view)
	if data, ok := c.cache.get(key); ok {
		c.metrics.ChartCache.WithLabelValues("hit").Inc()
		return data, nil
	}
	c.metrics.ChartCache.WithLabelValues("miss").Inc()

	data, err := c.inner.Render(series, metric, view)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, data)
	return data, nil
}

// cacheKey identifies a render by every input that changes its pixels.
// Hidden labels that name no winter in the series are ignored.
func cacheKey(series domain.AlignedSeries, view View) string {
	hidden := make([]string, 0, len(view.Hidden))
	for _, w := range series.Winters {
		if view.Hidden[w] {
			hidden = append(hidden, w)
		}
	}
	slices.Sort(hidden)

	return strings.Join([]string{
		series.Metric,
		string(series.Month),
		strconv.FormatBool(series.Smoothed),
		strconv.Itoa(series.Window),
		string(view.Format),
		strconv.Itoa(view.Width) + "x" + strconv.Itoa(view.Height),
		view.Locale.Key,
		strings.Join(hidden, ","),
	}, "|")
}

// lruCache is a thread-safe LRU of encoded images keyed by cacheKey.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	order      *list.List // front is most recently used
	entries    map[string]*list.Element
}

type cacheEntry struct {
	key  string
	data []byte
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: max(maxEntries, 1),
		order:      list.New(),
		entries:    make(map[string]*list.Element),
	}
}

func (c *lruCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).data, true
}

func (c *lruCache) put(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).data = data
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, data: data})
	for c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *lruCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
