package weather

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	syntheticHours     = 24
	syntheticDays      = 7
	syntheticTideCount = 4
	tideSpacing        = 6 * time.Hour

	winterBaseWindMPH = 15.0
	summerBaseWindMPH = 10.0
	windJitterMPH     = 5.0
	baseDirectionDeg  = 270.0
	directionJitter   = 30.0

	winterBaseTempF = 35.0
	summerBaseTempF = 65.0
	tempAmplitudeF  = 15.0
)

// Synthetic generates fallback weather and tide data with realistic shape and
// random values. It is safe for concurrent use.
type Synthetic struct {
	clock clockwork.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynthetic creates a generator. A nil clock uses real time and a nil rng
// is seeded from the runtime.
func NewSynthetic(clock clockwork.Clock, rng *rand.Rand) *Synthetic {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Synthetic{clock: clock, rng: rng}
}

// IsWinter reports whether m falls in the windy season (Nov through Feb).
func IsWinter(m time.Month) bool {
	return m >= time.November || m <= time.February
}

// uniform returns a value in [lo, hi).
func (g *Synthetic) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// Weather returns a synthetic snapshot for the next 24 hours.
func (g *Synthetic) Weather() WeatherSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	start := now.Truncate(time.Hour)

	baseWind, baseTemp := summerBaseWindMPH, summerBaseTempF
	if IsWinter(now.Month()) {
		baseWind, baseTemp = winterBaseWindMPH, winterBaseTempF
	}

	hourly := make([]HourlyPeriod, 0, syntheticHours)
	for h := 0; h < syntheticHours; h++ {
		speed := math.Max(0, baseWind+g.uniform(-windJitterMPH, windJitterMPH))
		hourly = append(hourly, HourlyPeriod{
			StartTime:        start.Add(time.Duration(h) * time.Hour),
			WindSpeedMPH:     math.Round(speed),
			WindDirectionDeg: math.Round(baseDirectionDeg + g.uniform(-directionJitter, directionJitter)),
			TemperatureF:     math.Round(baseTemp + tempAmplitudeF*math.Sin(math.Pi*float64(h)/syntheticHours)),
			ShortForecast:    "Partly Cloudy",
		})
	}

	first := hourly[0]
	speedMS := KnotsToMS(MPHToKnots(first.WindSpeedMPH))
	dir := first.WindDirectionDeg
	tempC := FahrenheitToCelsius(first.TemperatureF)

	daily := make([]DailyPeriod, 0, syntheticDays)
	day := time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, now.Location())
	for d := 0; d < syntheticDays; d++ {
		ts := day.AddDate(0, 0, d)
		speed := math.Round(baseWind + g.uniform(-windJitterMPH, windJitterMPH))
		daily = append(daily, DailyPeriod{
			Name:          ts.Weekday().String(),
			StartTime:     ts,
			IsDaytime:     true,
			TemperatureF:  math.Round(baseTemp + tempAmplitudeF),
			WindSpeed:     fmt.Sprintf("%.0f mph", math.Max(0, speed)),
			ShortForecast: "Partly Cloudy",
		})
	}

	return WeatherSnapshot{
		Observation: &Observation{
			Timestamp:        now,
			TemperatureC:     &tempC,
			WindSpeedMS:      &speedMS,
			WindDirectionDeg: &dir,
			TextDescription:  "Partly Cloudy",
		},
		Hourly: hourly,
		Daily:  daily,
	}
}

// Tides returns four alternating events starting now with high water.
func (g *Synthetic) Tides() TidePrediction {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	events := make([]TideEvent, 0, syntheticTideCount)
	for i := 0; i < syntheticTideCount; i++ {
		ev := TideEvent{Time: now.Add(time.Duration(i) * tideSpacing)}
		if i%2 == 0 {
			ev.Kind = TideHigh
			ev.HeightFt = g.uniform(8.5, 9.5)
		} else {
			ev.Kind = TideLow
			ev.HeightFt = g.uniform(0.5, 1.5)
		}
		ev.HeightFt = math.Round(ev.HeightFt*100) / 100
		events = append(events, ev)
	}
	return TidePrediction{Events: events}
}
