package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/kiteflow/internal/common"
	"github.com/i474232898/kiteflow/internal/weather"
)

const (
	nwsDefaultBaseURL = "https://api.weather.gov"
	geoJSON           = "application/geo+json"
)

var errNoForecastURLs = errors.New("points response is missing forecast urls")

// NWSProvider implements weather.WeatherSource for the National Weather Service API.
type NWSProvider struct {
	upstream
	baseURL string
	logger  *slog.Logger
}

// NewNWSProvider creates an NWS client. An empty baseURL uses api.weather.gov.
func NewNWSProvider(cfg HTTPClientConfig, baseURL string, logger *slog.Logger) *NWSProvider {
	if baseURL == "" {
		baseURL = nwsDefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NWSProvider{
		upstream: newUpstream("nws", cfg),
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger.With("component", "nws"),
	}
}

func (p *NWSProvider) Name() string {
	return p.source
}

// NWS API response types; only the fields we read.

type nwsPoints struct {
	Properties struct {
		Forecast            string `json:"forecast"`
		ForecastHourly      string `json:"forecastHourly"`
		ObservationStations string `json:"observationStations"`
	} `json:"properties"`
}

type nwsStations struct {
	Features []struct {
		Properties struct {
			StationIdentifier string `json:"stationIdentifier"`
		} `json:"properties"`
	} `json:"features"`
}

type nwsQuantity struct {
	UnitCode string   `json:"unitCode"`
	Value    *float64 `json:"value"`
}

type nwsObservation struct {
	Properties struct {
		Timestamp       string      `json:"timestamp"`
		TextDescription string      `json:"textDescription"`
		Temperature     nwsQuantity `json:"temperature"`
		WindSpeed       nwsQuantity `json:"windSpeed"`
		WindDirection   nwsQuantity `json:"windDirection"`
		// windGust is present upstream but not consumed; gusts are estimated.
	} `json:"properties"`
}

type nwsForecast struct {
	Properties struct {
		Periods []nwsPeriod `json:"periods"`
	} `json:"properties"`
}

type nwsPeriod struct {
	Name        string  `json:"name"`
	StartTime   string  `json:"startTime"`
	IsDaytime   bool    `json:"isDaytime"`
	Temperature float64 `json:"temperature"`
	WindSpeed   string  `json:"windSpeed"`
	// windDirection is a compass string ("SW") in current payloads and a
	// quantity object in older ones. Both are accepted.
	WindDirection windDirection `json:"windDirection"`
	ShortForecast string        `json:"shortForecast"`
}

type windDirection struct {
	Degrees float64
}

func (w *windDirection) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var label string
		if err := json.Unmarshal(b, &label); err != nil {
			return err
		}
		w.Degrees, _ = weather.CompassDegrees(label)
		return nil
	}
	var q nwsQuantity
	if err := json.Unmarshal(b, &q); err != nil {
		return err
	}
	if q.Value != nil {
		w.Degrees = *q.Value
	}
	return nil
}

// FetchWeather resolves the grid point for lat/lon and fetches the latest
// observation, hourly forecast and daily forecast. The observation is best
// effort; either forecast failing fails the whole fetch.
func (p *NWSProvider) FetchWeather(ctx context.Context, lat, lon float64) (weather.WeatherSnapshot, error) {
	var points nwsPoints
	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", p.baseURL, lat, lon)
	if err := p.getJSON(ctx, pointsURL, geoJSON, &points); err != nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("resolve grid point: %w", err)
	}
	props := points.Properties
	if props.Forecast == "" || props.ForecastHourly == "" {
		return weather.WeatherSnapshot{}, errNoForecastURLs
	}

	var (
		wg                  sync.WaitGroup
		obs                 *weather.Observation
		hourly, daily       nwsForecast
		hourlyErr, dailyErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		o, err := p.fetchObservation(ctx, props.ObservationStations)
		if err != nil {
			p.logger.Warn("observation unavailable", "lat", lat, "lon", lon, "error", err)
			return
		}
		obs = o
	}()
	go func() {
		defer wg.Done()
		hourlyErr = p.getJSON(ctx, props.ForecastHourly, geoJSON, &hourly)
	}()
	go func() {
		defer wg.Done()
		dailyErr = p.getJSON(ctx, props.Forecast, geoJSON, &daily)
	}()
	wg.Wait()

	if hourlyErr != nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("hourly forecast: %w", hourlyErr)
	}
	if dailyErr != nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("daily forecast: %w", dailyErr)
	}

	return weather.WeatherSnapshot{
		Observation: obs,
		Hourly:      mapHourly(hourly.Properties.Periods),
		Daily:       mapDaily(daily.Properties.Periods),
	}, nil
}

// fetchObservation follows station list -> first station -> latest observation.
func (p *NWSProvider) fetchObservation(ctx context.Context, stationsURL string) (*weather.Observation, error) {
	if stationsURL == "" {
		return nil, errors.New("no observation stations url")
	}

	var stations nwsStations
	if err := p.getJSON(ctx, stationsURL, geoJSON, &stations); err != nil {
		return nil, fmt.Errorf("station list: %w", err)
	}
	if len(stations.Features) == 0 || stations.Features[0].Properties.StationIdentifier == "" {
		return nil, errors.New("station list is empty")
	}
	id := stations.Features[0].Properties.StationIdentifier

	var raw nwsObservation
	obsURL := fmt.Sprintf("%s/stations/%s/observations/latest", p.baseURL, url.PathEscape(id))
	if err := p.getJSON(ctx, obsURL, geoJSON, &raw); err != nil {
		return nil, fmt.Errorf("latest observation for %s: %w", id, err)
	}

	pr := raw.Properties
	ts, err := time.Parse(time.RFC3339, pr.Timestamp)
	if err != nil {
		ts = time.Time{}
	}
	return &weather.Observation{
		Timestamp:        ts,
		TemperatureC:     tempC(pr.Temperature),
		WindSpeedMS:      speedMS(pr.WindSpeed),
		WindDirectionDeg: pr.WindDirection.Value,
		TextDescription:  pr.TextDescription,
	}, nil
}

// speedMS normalizes an observed wind speed to m/s. Stations report either
// wmoUnit:m_s-1 or wmoUnit:km_h-1.
func speedMS(q nwsQuantity) *float64 {
	if q.Value == nil {
		return nil
	}
	v := *q.Value
	if strings.HasSuffix(q.UnitCode, "km_h-1") {
		v /= 3.6
	}
	return &v
}

// tempC normalizes an observed temperature to °C.
func tempC(q nwsQuantity) *float64 {
	if q.Value == nil {
		return nil
	}
	v := *q.Value
	if strings.HasSuffix(q.UnitCode, "degF") {
		v = weather.FahrenheitToCelsius(v)
	}
	return &v
}

func mapHourly(periods []nwsPeriod) []weather.HourlyPeriod {
	out := make([]weather.HourlyPeriod, 0, len(periods))
	for _, pr := range periods {
		start, err := time.Parse(time.RFC3339, pr.StartTime)
		if err != nil {
			continue
		}
		speed, _ := common.FirstNumber(pr.WindSpeed)
		out = append(out, weather.HourlyPeriod{
			StartTime:        start,
			WindSpeedMPH:     speed,
			WindDirectionDeg: pr.WindDirection.Degrees,
			TemperatureF:     pr.Temperature,
			ShortForecast:    pr.ShortForecast,
		})
	}
	return out
}

func mapDaily(periods []nwsPeriod) []weather.DailyPeriod {
	out := make([]weather.DailyPeriod, 0, len(periods))
	for _, pr := range periods {
		start, _ := time.Parse(time.RFC3339, pr.StartTime)
		out = append(out, weather.DailyPeriod{
			Name:          pr.Name,
			StartTime:     start,
			IsDaytime:     pr.IsDaytime,
			TemperatureF:  pr.Temperature,
			WindSpeed:     pr.WindSpeed,
			ShortForecast: pr.ShortForecast,
		})
	}
	return out
}
