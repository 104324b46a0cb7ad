package providers

import (
	"container/list"
	"context"
	"strings"
	"sync"

	"github.com/i474232898/kiteflow/internal/observability"
	"github.com/i474232898/kiteflow/internal/weather"
)

// CachedGeocoder wraps a weather.Geocoder with an in-memory LRU cache keyed by
// the normalized query. Failed lookups are never cached.
type CachedGeocoder struct {
	inner   weather.Geocoder
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner weather.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	if metrics == nil {
		metrics = observability.NewMetricsForTesting()
	}
	return &CachedGeocoder{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, query string) (weather.Location, error) {
	key := strings.ToLower(strings.Join(strings.Fields(query), " "))
	if loc, ok := c.cache.get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return loc, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	loc, err := c.inner.Geocode(ctx, query)
	if err != nil {
		return loc, err
	}
	c.cache.put(key, loc)
	return loc, nil
}

// lruCache is a thread-safe LRU of resolved locations.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	order      *list.List // front is most recently used
	entries    map[string]*list.Element
}

type cacheEntry struct {
	key string
	loc weather.Location
}

func newLRUCache(maxEntries int) *lruCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache{
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
	}
}

func (c *lruCache) get(key string) (weather.Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return weather.Location{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).loc, true
}

func (c *lruCache) put(key string, loc weather.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).loc = loc
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, loc: loc})

	if c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
