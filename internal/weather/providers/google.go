package providers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/kiteflow/internal/weather"
)

var googleKeyOnce sync.Once

// GoogleGeocoder implements weather.Geocoder with the Google Geocoding API.
// The underlying client keeps its API key in a package variable, so the key
// of the first GoogleGeocoder created wins for the whole process.
type GoogleGeocoder struct {
	lookup func(geocoder.Address) (geocoder.Location, error)
}

// NewGoogleGeocoder configures the Google client with apiKey.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	googleKeyOnce.Do(func() {
		geocoder.ApiKey = apiKey
	})
	return &GoogleGeocoder{lookup: geocoder.Geocoding}
}

// Geocode resolves query as a free-form address. The client library is not
// context aware; a cancelled ctx abandons the lookup without waiting for it.
func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) (weather.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return weather.Location{}, weather.ErrLocationNotFound
	}

	type result struct {
		loc geocoder.Location
		err error
	}
	done := make(chan result, 1)
	go func() {
		loc, err := g.lookup(geocoder.Address{City: query})
		done <- result{loc, err}
	}()

	select {
	case <-ctx.Done():
		return weather.Location{}, fmt.Errorf("%w: %v", weather.ErrLocationNotFound, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return weather.Location{}, fmt.Errorf("%w: %v", weather.ErrLocationNotFound, r.err)
		}
		if r.loc.Latitude == 0 && r.loc.Longitude == 0 {
			return weather.Location{}, weather.ErrLocationNotFound
		}
		return weather.Location{Latitude: r.loc.Latitude, Longitude: r.loc.Longitude, Name: query}, nil
	}
}
