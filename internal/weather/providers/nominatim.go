package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/kiteflow/internal/weather"
)

const nominatimDefaultBaseURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder implements weather.Geocoder against the OpenStreetMap
// Nominatim search API. Only the top match is used.
type NominatimGeocoder struct {
	upstream
	baseURL string
	logger  *slog.Logger
}

// NewNominatimGeocoder creates a Nominatim client. An empty baseURL uses the
// public OpenStreetMap instance, which requires an identifying User-Agent.
func NewNominatimGeocoder(cfg HTTPClientConfig, baseURL string, logger *slog.Logger) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = nominatimDefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg.Backoff = BackoffConfig{MaxRetries: 0, InitialInterval: DefaultBackoff.InitialInterval}
	return &NominatimGeocoder{
		upstream: newUpstream("nominatim", cfg),
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger.With("component", "nominatim"),
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves query to its top match. Every failure, including an
// empty result list, is reported as weather.ErrLocationNotFound.
func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (weather.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return weather.Location{}, weather.ErrLocationNotFound
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", "1")
	searchURL := fmt.Sprintf("%s/search?%s", g.baseURL, params.Encode())

	var places []nominatimPlace
	if err := g.getJSON(ctx, searchURL, "application/json", &places); err != nil {
		g.logger.Debug("search failed", "query", query, "error", err)
		return weather.Location{}, fmt.Errorf("%w: %v", weather.ErrLocationNotFound, err)
	}
	if len(places) == 0 {
		return weather.Location{}, weather.ErrLocationNotFound
	}

	top := places[0]
	lat, err := strconv.ParseFloat(top.Lat, 64)
	if err != nil {
		return weather.Location{}, fmt.Errorf("%w: bad latitude %q", weather.ErrLocationNotFound, top.Lat)
	}
	lon, err := strconv.ParseFloat(top.Lon, 64)
	if err != nil {
		return weather.Location{}, fmt.Errorf("%w: bad longitude %q", weather.ErrLocationNotFound, top.Lon)
	}

	name := top.DisplayName
	if name == "" {
		name = query
	}
	return weather.Location{Latitude: lat, Longitude: lon, Name: name}, nil
}
