package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/kiteflow/internal/weather"
)

func TestNominatim_Geocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "Hood River, OR", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))

		writeJSON(t, w, []map[string]string{
			{"lat": "45.7054", "lon": "-121.5215", "display_name": "Hood River, Oregon, United States"},
		})
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(testHTTPConfig(), srv.URL, discardLogger())
	loc, err := g.Geocode(context.Background(), "  Hood River, OR ")
	require.NoError(t, err)
	assert.InDelta(t, 45.7054, loc.Latitude, 1e-9)
	assert.InDelta(t, -121.5215, loc.Longitude, 1e-9)
	assert.Equal(t, "Hood River, Oregon, United States", loc.Name)
}

func TestNominatim_Geocode_NameFallsBackToQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, []map[string]string{{"lat": "41.6688", "lon": "-70.2962"}})
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(testHTTPConfig(), srv.URL, discardLogger())
	loc, err := g.Geocode(context.Background(), "Cape Cod, MA")
	require.NoError(t, err)
	assert.Equal(t, "Cape Cod, MA", loc.Name)
}

func TestNominatim_Geocode_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"empty result", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, []map[string]string{})
		}},
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}},
		{"bad latitude", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, []map[string]string{{"lat": "north", "lon": "-70"}})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			g := NewNominatimGeocoder(testHTTPConfig(), srv.URL, discardLogger())
			_, err := g.Geocode(context.Background(), "Atlantis")
			assert.ErrorIs(t, err, weather.ErrLocationNotFound)
		})
	}
}

func TestNominatim_Geocode_EmptyQuery(t *testing.T) {
	g := NewNominatimGeocoder(testHTTPConfig(), "http://127.0.0.1:1", discardLogger())
	_, err := g.Geocode(context.Background(), "   ")
	assert.ErrorIs(t, err, weather.ErrLocationNotFound)
}
