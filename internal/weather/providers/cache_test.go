package providers

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/kiteflow/internal/observability"
	"github.com/i474232898/kiteflow/internal/weather"
)

type countingGeocoder struct {
	calls int
	loc   weather.Location
	err   error
}

func (m *countingGeocoder) Geocode(_ context.Context, _ string) (weather.Location, error) {
	m.calls++
	return m.loc, m.err
}

func TestCachedGeocoder_HitNormalizesQuery(t *testing.T) {
	inner := &countingGeocoder{loc: weather.Location{Latitude: 27.8006, Longitude: -97.3964, Name: "Corpus Christi"}}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedGeocoder(inner, 10, metrics)

	r1, err := cached.Geocode(context.Background(), "Corpus Christi, TX")
	require.NoError(t, err)
	r2, err := cached.Geocode(context.Background(), "  corpus   christi, tx")
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("hit")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("miss")), 0.001)
}

func TestCachedGeocoder_FailuresNotCached(t *testing.T) {
	inner := &countingGeocoder{err: weather.ErrLocationNotFound}
	cached := NewCachedGeocoder(inner, 10, nil)

	_, err := cached.Geocode(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, weather.ErrLocationNotFound)
	_, err = cached.Geocode(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, weather.ErrLocationNotFound)

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, cached.cache.len())
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", weather.Location{Name: "A"})
	c.put("b", weather.Location{Name: "B"})
	c.get("a")
	c.put("c", weather.Location{Name: "C"}) // evicts "b"

	_, ok := c.get("b")
	assert.False(t, ok, "b should have been evicted")

	got, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, 2, c.len())
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)
	c.put("a", weather.Location{Name: "A1"})
	c.put("a", weather.Location{Name: "A2"})

	got, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, "A2", got.Name)
	assert.Equal(t, 1, c.len())
}
