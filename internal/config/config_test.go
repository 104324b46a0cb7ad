package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "HTTP_TIMEOUT", "SHUTDOWN_TIMEOUT", "REFRESH_INTERVAL",
	"UPSTREAM_MAX_RETRIES", "USER_AGENT", "NOMINATIM_BASE_URL", "NWS_BASE_URL", "NOAA_TIDES_BASE_URL",
	"TIDE_STATION_ID", "TIDE_TIMEZONE", "GOOGLE_GEOCODER_API_KEY", "GEOCODE_CACHE_SIZE",
	"STORE_MAX_HISTORY", "DEFAULT_LOCATION_NAME", "DEFAULT_LOCATION_LAT", "DEFAULT_LOCATION_LON",
	"DEFAULT_RIDER_WEIGHT", "CORS_ALLOWED_ORIGINS", "FORCE_SYNTHETIC",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 0, cfg.UpstreamMaxRetries)
	assert.Equal(t, "KiteFlow/1.0 (kiteflow@example.com)", cfg.UserAgent)
	assert.Equal(t, "8447930", cfg.TideStationID)
	assert.Equal(t, "America/New_York", cfg.TideTimezone.String())
	assert.Empty(t, cfg.GoogleGeocoderAPIKey)
	assert.Equal(t, 256, cfg.GeocodeCacheSize)
	assert.Equal(t, "Cape Cod, MA", cfg.DefaultLocation.Name)
	assert.Equal(t, 41.6688, cfg.DefaultLocation.Latitude)
	assert.Equal(t, -70.2962, cfg.DefaultLocation.Longitude)
	assert.Equal(t, 180.0, cfg.DefaultRider.WeightPounds)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	assert.False(t, cfg.ForceSynthetic)
}

func TestLoad_CustomEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("UPSTREAM_MAX_RETRIES", "2")
	t.Setenv("TIDE_STATION_ID", "9414290")
	t.Setenv("TIDE_TIMEZONE", "America/Los_Angeles")
	t.Setenv("DEFAULT_LOCATION_NAME", "Hood River, OR")
	t.Setenv("DEFAULT_LOCATION_LAT", "45.7054")
	t.Setenv("DEFAULT_LOCATION_LON", "-121.5215")
	t.Setenv("DEFAULT_RIDER_WEIGHT", "150")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("FORCE_SYNTHETIC", "true")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 2, cfg.UpstreamMaxRetries)
	assert.Equal(t, "9414290", cfg.TideStationID)
	assert.Equal(t, "America/Los_Angeles", cfg.TideTimezone.String())
	assert.Equal(t, "Hood River, OR", cfg.DefaultLocation.Name)
	assert.Equal(t, 150.0, cfg.DefaultRider.WeightPounds)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	assert.True(t, cfg.ForceSynthetic)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"HTTP_TIMEOUT", "soon"},
		{"REFRESH_INTERVAL", "10s"},
		{"UPSTREAM_MAX_RETRIES", "-1"},
		{"UPSTREAM_MAX_RETRIES", "many"},
		{"GEOCODE_CACHE_SIZE", "big"},
		{"TIDE_TIMEZONE", "Mars/Olympus_Mons"},
		{"DEFAULT_LOCATION_LAT", "91"},
		{"DEFAULT_LOCATION_LON", "east"},
		{"DEFAULT_RIDER_WEIGHT", "0"},
		{"FORCE_SYNTHETIC", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := fromEnv()
			assert.Error(t, err)
		})
	}
}
