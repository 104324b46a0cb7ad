package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestDeriveConditions_PrefersObservation(t *testing.T) {
	snap := WeatherSnapshot{
		Observation: &Observation{
			WindSpeedMS:      ptr(10),
			WindDirectionDeg: ptr(225),
			TemperatureC:     ptr(20),
			TextDescription:  "Mostly Sunny",
		},
		Hourly: []HourlyPeriod{{WindSpeedMPH: 30, WindDirectionDeg: 90, TemperatureF: 50, ShortForecast: "Rain"}},
	}
	c := DeriveConditions(snap)
	assert.InDelta(t, 19.44, c.WindKnots, 1e-9)
	assert.InDelta(t, 25.272, c.GustKnots, 1e-9)
	assert.Equal(t, "SW", c.DirectionLabel)
	assert.InDelta(t, 68, c.TemperatureF, 1e-9)
	assert.Equal(t, "Mostly Sunny", c.Description)
}

func TestDeriveConditions_FallsBackToHourly(t *testing.T) {
	snap := WeatherSnapshot{
		Observation: &Observation{TemperatureC: ptr(20)},
		Hourly:      []HourlyPeriod{{WindSpeedMPH: 10, WindDirectionDeg: 90, TemperatureF: 50, ShortForecast: "Breezy"}},
	}
	c := DeriveConditions(snap)
	assert.InDelta(t, 8.68976, c.WindKnots, 1e-9)
	assert.Equal(t, "E", c.DirectionLabel)
	assert.Equal(t, 50.0, c.TemperatureF)
	assert.Equal(t, "Breezy", c.Description)
}

func TestDeriveConditions_EmptySnapshot(t *testing.T) {
	c := DeriveConditions(WeatherSnapshot{})
	assert.Zero(t, c.WindKnots)
	assert.Equal(t, "N", c.DirectionLabel)
	assert.False(t, Recommend(180, c.WindKnots).HasData)
}

func TestHourlyWindKnots(t *testing.T) {
	hourly := make([]HourlyPeriod, 30)
	for i := range hourly {
		hourly[i].WindSpeedMPH = float64(i)
	}
	got := HourlyWindKnots(WeatherSnapshot{Hourly: hourly}, 24)
	assert.Len(t, got, 24)
	assert.InDelta(t, MPHToKnots(23), got[23], 1e-9)

	assert.Empty(t, HourlyWindKnots(WeatherSnapshot{}, 24))
}
