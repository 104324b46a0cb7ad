package weather

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestSynthetic_Tides(t *testing.T) {
	now := time.Date(2026, 7, 4, 9, 17, 0, 0, time.UTC)
	g := NewSynthetic(clockwork.NewFakeClockAt(now), seeded())

	for run := 0; run < 20; run++ {
		tides := g.Tides()
		require.Len(t, tides.Events, 4)
		for i, ev := range tides.Events {
			assert.Equal(t, now.Add(time.Duration(i)*6*time.Hour), ev.Time)
			if i%2 == 0 {
				assert.Equal(t, TideHigh, ev.Kind)
				assert.GreaterOrEqual(t, ev.HeightFt, 8.5)
				assert.LessOrEqual(t, ev.HeightFt, 9.5)
			} else {
				assert.Equal(t, TideLow, ev.Kind)
				assert.GreaterOrEqual(t, ev.HeightFt, 0.5)
				assert.LessOrEqual(t, ev.HeightFt, 1.5)
			}
		}
	}
}

func TestSynthetic_WeatherShape(t *testing.T) {
	now := time.Date(2026, 7, 4, 9, 17, 0, 0, time.UTC)
	g := NewSynthetic(clockwork.NewFakeClockAt(now), seeded())

	snap := g.Weather()
	require.Len(t, snap.Hourly, 24)
	require.Len(t, snap.Daily, 7)
	require.NotNil(t, snap.Observation)

	assert.Equal(t, time.Date(2026, 7, 4, 9, 0, 0, 0, time.UTC), snap.Hourly[0].StartTime)
	for i, h := range snap.Hourly {
		if i > 0 {
			assert.True(t, h.StartTime.After(snap.Hourly[i-1].StartTime))
		}
		assert.GreaterOrEqual(t, h.WindSpeedMPH, 5.0)
		assert.LessOrEqual(t, h.WindSpeedMPH, 15.0)
		assert.GreaterOrEqual(t, h.WindDirectionDeg, 240.0)
		assert.LessOrEqual(t, h.WindDirectionDeg, 300.0)
	}
	assert.Equal(t, 65.0, snap.Hourly[0].TemperatureF)
	assert.Equal(t, 80.0, snap.Hourly[12].TemperatureF, "temperature peaks mid-window")

	c := DeriveConditions(snap)
	assert.InDelta(t, MPHToKnots(snap.Hourly[0].WindSpeedMPH), c.WindKnots, 1e-6)
}

func TestSynthetic_WinterIsWindier(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	g := NewSynthetic(clockwork.NewFakeClockAt(now), seeded())

	snap := g.Weather()
	for _, h := range snap.Hourly {
		assert.GreaterOrEqual(t, h.WindSpeedMPH, 10.0)
		assert.LessOrEqual(t, h.WindSpeedMPH, 20.0)
	}
	assert.Equal(t, 35.0, snap.Hourly[0].TemperatureF)
}

func TestIsWinter(t *testing.T) {
	for _, m := range []time.Month{time.November, time.December, time.January, time.February} {
		assert.True(t, IsWinter(m), m.String())
	}
	for _, m := range []time.Month{time.March, time.June, time.October} {
		assert.False(t, IsWinter(m), m.String())
	}
}
