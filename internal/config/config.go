package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/kiteflow/internal/weather"
)

// AppConfig is the process configuration, read from the environment.
type AppConfig struct {
	Port      string
	LogLevel  string
	LogFormat string

	HTTPTimeout        time.Duration
	ShutdownTimeout    time.Duration
	RefreshInterval    time.Duration
	UpstreamMaxRetries int
	UserAgent          string

	NominatimBaseURL string
	NWSBaseURL       string
	NOAABaseURL      string

	TideStationID string
	TideTimezone  *time.Location

	// GoogleGeocoderAPIKey switches geocoding from Nominatim to Google when set.
	GoogleGeocoderAPIKey string
	GeocodeCacheSize     int

	// StoreMaxHistory is the number of accepted states kept per location.
	StoreMaxHistory int

	DefaultLocation weather.Location
	DefaultRider    weather.RiderProfile

	CORSAllowedOrigins string
	ForceSynthetic     bool
}

// Load reads configuration from .env (if present) and the environment with
// sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Info("could not load .env file", "error", err)
	}
	return fromEnv()
}

func fromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:                 getenvDefault("PORT", "8080"),
		LogLevel:             getenvDefault("LOG_LEVEL", "info"),
		LogFormat:            getenvDefault("LOG_FORMAT", "json"),
		UserAgent:            getenvDefault("USER_AGENT", "KiteFlow/1.0 (kiteflow@example.com)"),
		NominatimBaseURL:     os.Getenv("NOMINATIM_BASE_URL"),
		NWSBaseURL:           os.Getenv("NWS_BASE_URL"),
		NOAABaseURL:          os.Getenv("NOAA_TIDES_BASE_URL"),
		TideStationID:        getenvDefault("TIDE_STATION_ID", "8447930"),
		GoogleGeocoderAPIKey: os.Getenv("GOOGLE_GEOCODER_API_KEY"),
		CORSAllowedOrigins:   getenvDefault("CORS_ALLOWED_ORIGINS", "*"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval < time.Minute {
		return nil, fmt.Errorf("REFRESH_INTERVAL must be at least 1m, got %s", cfg.RefreshInterval)
	}

	if cfg.UpstreamMaxRetries, err = getenvInt("UPSTREAM_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.UpstreamMaxRetries < 0 {
		return nil, fmt.Errorf("UPSTREAM_MAX_RETRIES must be >= 0, got %d", cfg.UpstreamMaxRetries)
	}
	if cfg.GeocodeCacheSize, err = getenvInt("GEOCODE_CACHE_SIZE", 256); err != nil {
		return nil, err
	}
	if cfg.StoreMaxHistory, err = getenvInt("STORE_MAX_HISTORY", 10); err != nil {
		return nil, err
	}

	tz := getenvDefault("TIDE_TIMEZONE", "America/New_York")
	if cfg.TideTimezone, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid TIDE_TIMEZONE: %w", err)
	}

	if cfg.DefaultLocation, err = loadDefaultLocation(); err != nil {
		return nil, err
	}

	weight, err := getenvFloat("DEFAULT_RIDER_WEIGHT", 180)
	if err != nil {
		return nil, err
	}
	if weight <= 0 || weight > 500 {
		return nil, fmt.Errorf("DEFAULT_RIDER_WEIGHT must be in (0, 500], got %v", weight)
	}
	cfg.DefaultRider = weather.RiderProfile{WeightPounds: weight}

	if cfg.ForceSynthetic, err = getenvBool("FORCE_SYNTHETIC", false); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDefaultLocation() (weather.Location, error) {
	lat, err := getenvFloat("DEFAULT_LOCATION_LAT", 41.6688)
	if err != nil {
		return weather.Location{}, err
	}
	lon, err := getenvFloat("DEFAULT_LOCATION_LON", -70.2962)
	if err != nil {
		return weather.Location{}, err
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return weather.Location{}, fmt.Errorf("default location %v,%v is out of range", lat, lon)
	}
	return weather.Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      getenvDefault("DEFAULT_LOCATION_NAME", "Cape Cod, MA"),
	}, nil
}

// AllowedOrigins splits CORSAllowedOrigins into its entries.
func (c *AppConfig) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
