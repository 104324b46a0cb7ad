package weather

import (
	"fmt"
	"time"
)

// TideKind distinguishes predicted high and low water.
type TideKind string

const (
	TideHigh TideKind = "high"
	TideLow  TideKind = "low"
)

// AlertLevel is the severity of a safety alert.
type AlertLevel string

const (
	AlertInfo    AlertLevel = "info"
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
)

// Location is a point the dashboard reports conditions for.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Name      string  `json:"name"`
}

// Key returns a canonical string key for a location, rounded to ~10m.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f,%.4f", l.Latitude, l.Longitude)
}

// Observation is the latest station observation. Fields are pointers because
// the upstream payload reports missing sensor values as null.
type Observation struct {
	Timestamp        time.Time `json:"timestamp"`
	TemperatureC     *float64  `json:"temperatureC,omitempty"`
	WindSpeedMS      *float64  `json:"windSpeedMs,omitempty"`
	WindDirectionDeg *float64  `json:"windDirectionDeg,omitempty"`
	TextDescription  string    `json:"textDescription"`
}

// HourlyPeriod is one hour of the hourly forecast.
type HourlyPeriod struct {
	StartTime        time.Time `json:"startTime"`
	WindSpeedMPH     float64   `json:"windSpeedMph"`
	WindDirectionDeg float64   `json:"windDirectionDeg"`
	TemperatureF     float64   `json:"temperatureF"`
	ShortForecast    string    `json:"shortForecast,omitempty"`
}

// DailyPeriod is one named period (e.g. "Tonight") of the daily forecast.
type DailyPeriod struct {
	Name          string    `json:"name"`
	StartTime     time.Time `json:"startTime"`
	IsDaytime     bool      `json:"isDaytime"`
	TemperatureF  float64   `json:"temperatureF"`
	WindSpeed     string    `json:"windSpeed"`
	ShortForecast string    `json:"shortForecast"`
}

// WeatherSnapshot is everything fetched for one location in one load.
// Live and synthetic snapshots share this shape and are not marked apart.
// Hourly is ordered by StartTime ascending.
type WeatherSnapshot struct {
	Observation *Observation   `json:"observation,omitempty"`
	Hourly      []HourlyPeriod `json:"hourly"`
	Daily       []DailyPeriod  `json:"daily"`
}

// TideEvent is a predicted local tidal extremum.
type TideEvent struct {
	Time     time.Time `json:"time"`
	HeightFt float64   `json:"heightFt"`
	Kind     TideKind  `json:"kind"`
}

// TidePrediction holds the day's hi/lo events in fetch order.
type TidePrediction struct {
	Events []TideEvent `json:"events"`
}

// RiderProfile carries the rider's weight for a single recommendation.
type RiderProfile struct {
	WeightPounds float64 `json:"weightLb"`
}

// Conditions are the display-unit values derived from a snapshot.
type Conditions struct {
	WindKnots      float64 `json:"windKnots"`
	GustKnots      float64 `json:"gustKnots"`
	DirectionDeg   float64 `json:"directionDeg"`
	DirectionLabel string  `json:"directionLabel"`
	TemperatureF   float64 `json:"temperatureF"`
	Description    string  `json:"description"`
}

// KiteSizeRecommendation is derived per request and never stored on its own.
type KiteSizeRecommendation struct {
	SizeSquareMeters float64 `json:"sizeSquareMeters"`
	HasData          bool    `json:"hasData"`
	Advice           string  `json:"advice"`
	Status           Status  `json:"status"`
}

// Label renders the size for display, or "no data".
func (r KiteSizeRecommendation) Label() string {
	if !r.HasData {
		return NoDataLabel
	}
	return fmt.Sprintf("%.1f m²", r.SizeSquareMeters)
}

// SafetyAlert is one entry of the safety panel.
type SafetyAlert struct {
	Level   AlertLevel `json:"level"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}

// AppState is the immutable result of one pipeline run.
type AppState struct {
	Seq            uint64                 `json:"seq"`
	RunID          string                 `json:"runId"`
	Location       Location               `json:"location"`
	Weather        WeatherSnapshot        `json:"weather"`
	Tides          TidePrediction         `json:"tides"`
	Conditions     Conditions             `json:"conditions"`
	Rider          RiderProfile           `json:"rider"`
	Recommendation KiteSizeRecommendation `json:"recommendation"`
	Alerts         []SafetyAlert          `json:"alerts"`
	GeneratedAt    time.Time              `json:"generatedAt"`
}

// WithRider returns a copy of the state with the recommendation and alerts
// recomputed for a different rider. The receiver is not modified.
func (s AppState) WithRider(rider RiderProfile) AppState {
	out := s
	out.Rider = rider
	out.Recommendation = Recommend(rider.WeightPounds, s.Conditions.WindKnots)
	out.Alerts = SafetyAlerts(s.Conditions.WindKnots, s.Conditions.TemperatureF)
	return out
}
