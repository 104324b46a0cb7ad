package weather

import (
	"context"
	"errors"
	"time"
)

// ErrLocationNotFound is the single error reported for any geocoding failure.
var ErrLocationNotFound = errors.New("location not found")

// Geocoder resolves a free-text query to a location (top match only).
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Location, error)
}

// WeatherSource abstracts a weather data source (e.g. the NWS API).
type WeatherSource interface {
	Name() string
	FetchWeather(ctx context.Context, lat, lon float64) (WeatherSnapshot, error)
}

// TideSource abstracts a tide prediction source scoped to a reference station.
type TideSource interface {
	Name() string
	FetchTides(ctx context.Context, day time.Time) (TidePrediction, error)
}

// StateStore is the contract the pipeline publishes finished runs to.
type StateStore interface {
	// Publish stores the state if its Seq is newer than anything accepted so far.
	Publish(state AppState) bool
	Latest() (AppState, bool)
	// ForLocation returns the recent accepted states for loc, oldest first.
	ForLocation(loc Location) []AppState
}
